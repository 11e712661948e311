//go:build !debug_trace
// +build !debug_trace

// logger_notrace.go compiles per-frame trace logging out unless the debug_trace build tag is set.

package logger

import (
	"context"
)

// Tracef is a no-op without the debug_trace build tag: it is called on
// every published frame.
func Tracef(ctx context.Context, format string, args ...any) {}
