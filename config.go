package edgeviewer

import (
	"github.com/xaionaro-go/edgeviewer/edge"
	"github.com/xaionaro-go/edgeviewer/frameslot"
)

const DefaultLatencyWindow = 30

type Config struct {
	// Detector turns raw frames into edge masks; defaults to edge.Bild.
	Detector edge.Detector

	// Allocator provides the slot's pixel buffer; defaults to an unlimited
	// frameslot.HeapAllocator.
	Allocator frameslot.Allocator

	// LatencyWindow is the amount of frames the processing latency is
	// averaged over.
	LatencyWindow int
}

func DefaultConfig() Config {
	return Config{
		Detector:      edge.NewBild(edge.DefaultBildConfig()),
		Allocator:     frameslot.NewHeapAllocator(0),
		LatencyWindow: DefaultLatencyWindow,
	}
}

func (cfg Config) withDefaults() Config {
	def := DefaultConfig()
	if cfg.Detector == nil {
		cfg.Detector = def.Detector
	}
	if cfg.Allocator == nil {
		cfg.Allocator = def.Allocator
	}
	if cfg.LatencyWindow <= 0 {
		cfg.LatencyWindow = def.LatencyWindow
	}
	return cfg
}
