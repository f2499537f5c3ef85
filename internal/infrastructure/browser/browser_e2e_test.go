//go:build e2e

package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ZhihuClipper/internal/config"
)

func TestLoaderSnapshotsScriptContent_E2E(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<!doctype html><html><body><div id="root"></div>
<script>document.getElementById('root').innerHTML = '<h1 class="QuestionHeader-title">rendered</h1>';</script>
</body></html>`))
	}))
	defer srv.Close()

	loader := NewLoader(config.BrowserConfig{Headless: true, Timeout: 30 * time.Second, WaitSelector: ".QuestionHeader-title"}, "", nil)
	doc, err := loader.Load(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got := doc.Find(".QuestionHeader-title").Text(); got != "rendered" {
		t.Fatalf("expected rendered title, got %q", got)
	}
}
