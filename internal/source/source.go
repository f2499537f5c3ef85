package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrRestrictedPage marks browser-internal pages nothing may be read from.
	ErrRestrictedPage = errors.New("cannot read browser-internal pages")
	// ErrUnsupportedSite marks pages outside zhihu.com.
	ErrUnsupportedSite = errors.New("page is not on zhihu.com")
)

const siteDomain = "zhihu.com"

// Loader is a single snapshot strategy (file, http, browser).
type Loader interface {
	Name() string
	Load(ctx context.Context, target string) (*goquery.Document, error)
}

// Registry keeps a mapping from loader names to their implementations.
type Registry struct {
	loaders map[string]Loader
	remote  string
}

// NewRegistry builds an empty registry; remote names the loader used for URLs.
func NewRegistry(remote string) *Registry {
	return &Registry{loaders: map[string]Loader{}, remote: remote}
}

// Register adds or replaces a loader implementation.
func (r *Registry) Register(loader Loader) {
	if r.loaders == nil {
		r.loaders = map[string]Loader{}
	}
	r.loaders[loader.Name()] = loader
}

// Resolve returns a loader by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Loader, error) {
	if loader, ok := r.loaders[name]; ok {
		return loader, nil
	}
	return nil, fmt.Errorf("loader %s is not registered", name)
}

// Load picks the loader for target and snapshots it. URL targets must pass CheckTarget.
func (r *Registry) Load(ctx context.Context, target string) (*goquery.Document, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, fmt.Errorf("empty target")
	}

	name := "file"
	if IsURL(target) {
		if err := CheckTarget(target); err != nil {
			return nil, err
		}
		name = r.remote
	}

	loader, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}

	doc, err := loader.Load(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("%s loader: %w", name, err)
	}
	return doc, nil
}

// IsURL reports whether target looks like something a browser tab could show.
func IsURL(target string) bool {
	lower := strings.ToLower(target)
	for _, prefix := range []string{"http://", "https://", "about:", "chrome:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// CheckTarget rejects browser-internal pages and anything outside zhihu.com.
func CheckTarget(raw string) error {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(lower, "about:") || strings.HasPrefix(lower, "chrome:") {
		return ErrRestrictedPage
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %s: %w", raw, err)
	}
	host := strings.ToLower(u.Hostname())
	if host != siteDomain && !strings.HasSuffix(host, "."+siteDomain) {
		return fmt.Errorf("%w: %s", ErrUnsupportedSite, host)
	}
	return nil
}
