package source

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

type stubLoader struct {
	name    string
	targets []string
}

func (s *stubLoader) Name() string { return s.name }

func (s *stubLoader) Load(_ context.Context, target string) (*goquery.Document, error) {
	s.targets = append(s.targets, target)
	return goquery.NewDocumentFromReader(strings.NewReader("<p>" + s.name + "</p>"))
}

func TestCheckTarget(t *testing.T) {
	t.Parallel()

	cases := []struct {
		target string
		want   error
	}{
		{"https://www.zhihu.com/question/1", nil},
		{"https://zhuanlan.zhihu.com/p/2", nil},
		{"https://zhihu.com/", nil},
		{"about:blank", ErrRestrictedPage},
		{"chrome://extensions", ErrRestrictedPage},
		{"https://example.com/zhihu.com", ErrUnsupportedSite},
		{"https://notzhihu.com/", ErrUnsupportedSite},
	}
	for _, c := range cases {
		err := CheckTarget(c.target)
		if c.want == nil && err != nil {
			t.Fatalf("%s: unexpected error %v", c.target, err)
		}
		if c.want != nil && !errors.Is(err, c.want) {
			t.Fatalf("%s: expected %v, got %v", c.target, c.want, err)
		}
	}
}

func TestRegistryRoutesTargets(t *testing.T) {
	t.Parallel()

	file := &stubLoader{name: "file"}
	remote := &stubLoader{name: "http"}
	reg := NewRegistry("http")
	reg.Register(file)
	reg.Register(remote)

	ctx := context.Background()
	if _, err := reg.Load(ctx, "page.html"); err != nil {
		t.Fatalf("load file: %v", err)
	}
	if _, err := reg.Load(ctx, " https://www.zhihu.com/question/1 "); err != nil {
		t.Fatalf("load url: %v", err)
	}
	if _, err := reg.Load(ctx, "https://example.com"); !errors.Is(err, ErrUnsupportedSite) {
		t.Fatalf("expected unsupported site, got %v", err)
	}

	if len(file.targets) != 1 || file.targets[0] != "page.html" {
		t.Fatalf("unexpected file targets: %v", file.targets)
	}
	if len(remote.targets) != 1 || remote.targets[0] != "https://www.zhihu.com/question/1" {
		t.Fatalf("unexpected remote targets: %v", remote.targets)
	}
}

func TestRegistryMissingLoader(t *testing.T) {
	t.Parallel()

	reg := NewRegistry("browser")
	if _, err := reg.Load(context.Background(), "https://www.zhihu.com/"); err == nil {
		t.Fatalf("expected error for unregistered loader")
	}
	if _, err := reg.Load(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty target")
	}
}
