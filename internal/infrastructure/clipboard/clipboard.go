package clipboard

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"

	"ZhihuClipper/internal/ports"
)

// System writes to the OS clipboard.
type System struct {
	write func(string) error
}

var _ ports.Clipboard = (*System)(nil)

// NewSystem builds a clipboard backed by the platform tool (pbcopy, xclip, wl-copy, ...).
func NewSystem() *System {
	return &System{write: clipboard.WriteAll}
}

// Available reports whether a clipboard tool was found on this host.
func Available() bool {
	return !clipboard.Unsupported
}

// WriteText replaces the clipboard contents with text.
func (s *System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available")
	}
	if err := s.write(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
