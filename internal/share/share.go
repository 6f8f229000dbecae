// Package share builds shareable recipe links and puts them on the system
// clipboard.
package share

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/hammamikhairi/recipebox/internal/logger"
)

// ErrClipboardUnavailable is returned when no clipboard can be written.
// The link is still returned so it can be shown instead.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Link returns the fragment link for a recipe: <base>/#recipe-<id>.
func Link(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + "/#recipe-" + id
}

// Option configures a Sharer.
type Option func(*Sharer)

// WithClipboard replaces the clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(s *Sharer) {
		s.write = write
		s.unsupported = func() bool { return false }
	}
}

// Sharer copies recipe links to the clipboard.
type Sharer struct {
	baseURL     string
	write       func(string) error
	unsupported func() bool
	log         *logger.Logger
}

// NewSharer creates a sharer that builds links under baseURL.
func NewSharer(baseURL string, log *logger.Logger, opts ...Option) *Sharer {
	s := &Sharer{
		baseURL:     baseURL,
		write:       clipboard.WriteAll,
		unsupported: func() bool { return clipboard.Unsupported },
		log:         log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Share builds the link for id and copies it. When the clipboard cannot
// be used it returns the link together with ErrClipboardUnavailable.
func (s *Sharer) Share(id string) (string, error) {
	link := Link(s.baseURL, id)
	if s.unsupported() {
		s.log.Debug("clipboard not supported on this system")
		return link, ErrClipboardUnavailable
	}
	if err := s.write(link); err != nil {
		s.log.Warn("copying link to clipboard: %v", err)
		return link, fmt.Errorf("%w: %v", ErrClipboardUnavailable, err)
	}
	s.log.Info("copied share link for %s", id)
	return link, nil
}
