// Package sink writes text summaries to named external destinations.
package sink

import (
	"context"
	"fmt"
)

// Sink accepts full-value overwrites of named text slots.
type Sink interface {
	// Set replaces the value stored under name.
	Set(ctx context.Context, name, value string) error
}

// Nop discards every write.
type Nop struct{}

// Set implements Sink.
func (Nop) Set(ctx context.Context, name, value string) error { return nil }

// UnknownSinkError is returned for a name a sink has no destination for.
type UnknownSinkError struct {
	Name string
}

func (e *UnknownSinkError) Error() string {
	return fmt.Sprintf("unknown sink: %s", e.Name)
}
