package scheduler

import (
	"context"
	"time"

	"ZhihuClipper/internal/domain"
	"ZhihuClipper/internal/ports"
)

// LinePacer hands panel lines out one per tick.
type LinePacer struct {
	interval time.Duration
}

var _ ports.Pacer = (*LinePacer)(nil)

// NewLinePacer builds a pacer; a non-positive interval emits everything at once.
func NewLinePacer(interval time.Duration) *LinePacer {
	if interval < 0 {
		interval = 0
	}
	return &LinePacer{interval: interval}
}

// Interval returns the delay between two lines.
func (p *LinePacer) Interval() time.Duration {
	return p.interval
}

// Pace calls emit for every line in order, waiting one interval between
// lines. It stops on the first emit error or when ctx is done.
func (p *LinePacer) Pace(ctx context.Context, lines []domain.PanelLine, emit func(domain.PanelLine) error) error {
	if emit == nil || len(lines) == 0 {
		return nil
	}

	if p.interval == 0 {
		for _, line := range lines {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := emit(line); err != nil {
				return err
			}
		}
		return nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	if err := emit(lines[0]); err != nil {
		return err
	}
	for _, line := range lines[1:] {
		select {
		case <-ticker.C:
			if err := emit(line); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
