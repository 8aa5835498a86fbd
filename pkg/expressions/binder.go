package expressions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
)

// StaticBinder implements domain.IntegrationParameterBinder for settings the
// host has already resolved. Expression evaluation happens host-side before
// an execution reaches this process, so binding here is a plain
// settings-to-struct mapping through JSON tags.
type StaticBinder struct {
	logger zerolog.Logger
}

type StaticBinderOptions struct {
	Logger zerolog.Logger
}

func NewStaticBinder(opts StaticBinderOptions) *StaticBinder {
	return &StaticBinder{
		logger: opts.Logger,
	}
}

func (b *StaticBinder) BindToStruct(ctx context.Context, item any, target any, settings map[string]any) error {
	if target == nil {
		return fmt.Errorf("bind target is nil")
	}

	jsonData, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal node settings: %w", err)
	}

	if err := json.Unmarshal(jsonData, target); err != nil {
		return fmt.Errorf("failed to unmarshal settings to target struct: %w", err)
	}

	return nil
}
