package types

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/atomic"
)

type StatisticsItem struct {
	Count uint64 `json:",omitempty"`
	Bytes uint64 `json:",omitempty"`
}

func (s StatisticsItem) String() string {
	return fmt.Sprintf("%d (%s)", s.Count, humanize.IBytes(s.Bytes))
}

type DropStatistics struct {
	InvalidFrame      StatisticsItem `json:",omitempty"`
	ConversionFailure StatisticsItem `json:",omitempty"`
	AllocationFailure StatisticsItem `json:",omitempty"`
}

func (s DropStatistics) TotalCount() uint64 {
	return s.InvalidFrame.Count + s.ConversionFailure.Count + s.AllocationFailure.Count
}

type Statistics struct {
	Ingested   StatisticsItem
	Published  StatisticsItem
	Dropped    DropStatistics
	Resolution Resolution
	Generation uint64

	// ProcessingLatency is the smoothed duration of detect+publish.
	ProcessingLatency time.Duration
}

type CountersItem struct {
	Count atomic.Uint64
	Bytes atomic.Uint64
}

func NewCountersItem() *CountersItem {
	return &CountersItem{}
}

func (c *CountersItem) Increment(msgSize uint64) {
	c.Count.Add(1)
	c.Bytes.Add(msgSize)
}

func (c *CountersItem) ToStats() StatisticsItem {
	return StatisticsItem{
		Count: c.Count.Load(),
		Bytes: c.Bytes.Load(),
	}
}

type DropCounters struct {
	InvalidFrame      *CountersItem
	ConversionFailure *CountersItem
	AllocationFailure *CountersItem
}

func NewDropCounters() DropCounters {
	return DropCounters{
		InvalidFrame:      NewCountersItem(),
		ConversionFailure: NewCountersItem(),
		AllocationFailure: NewCountersItem(),
	}
}

func (c *DropCounters) ToStats() DropStatistics {
	return DropStatistics{
		InvalidFrame:      c.InvalidFrame.ToStats(),
		ConversionFailure: c.ConversionFailure.ToStats(),
		AllocationFailure: c.AllocationFailure.ToStats(),
	}
}
