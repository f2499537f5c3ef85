package logger

import (
	"fmt"
	"log"
	"os"
)

// New returns a stdlib logger on stderr for messages emitted before slog is configured.
func New(component string) *log.Logger {
	prefix := fmt.Sprintf("[%s] ", component)
	return log.New(os.Stderr, prefix, log.LstdFlags)
}
