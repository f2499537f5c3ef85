package usecase

import (
	"context"
	"fmt"

	"ZhihuClipper/internal/domain"
	"ZhihuClipper/internal/ports"
)

// Streamer wires the line pacer with the panel session.
type Streamer struct {
	pacer ports.Pacer
	panel *Panel
}

// NewStreamer returns a helper that renders extraction results line by line.
func NewStreamer(pacer ports.Pacer, panel *Panel) *Streamer {
	return &Streamer{pacer: pacer, panel: panel}
}

// Stream extracts target and plays the resulting lines through emit.
func (s *Streamer) Stream(ctx context.Context, target string, emit func(domain.PanelLine) error) (domain.ExtractionResult, error) {
	if s.panel == nil {
		return domain.ExtractionResult{}, ErrNoSource
	}

	result, err := s.panel.Extract(ctx, target)
	if err != nil {
		return domain.ExtractionResult{}, err
	}
	if err := s.Play(ctx, result, emit); err != nil {
		return result, fmt.Errorf("stream lines: %w", err)
	}
	return result, nil
}

// Play emits the lines of result, paced when a pacer is configured.
func (s *Streamer) Play(ctx context.Context, result domain.ExtractionResult, emit func(domain.PanelLine) error) error {
	lines := result.Lines()
	if len(lines) == 0 || emit == nil {
		return nil
	}

	if s.pacer == nil {
		for _, line := range lines {
			if err := emit(line); err != nil {
				return err
			}
		}
		return nil
	}

	return s.pacer.Pace(ctx, lines, emit)
}
