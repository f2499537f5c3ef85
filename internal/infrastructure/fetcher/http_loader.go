package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"ZhihuClipper/internal/config"
	"ZhihuClipper/internal/source"
)

const defaultMaxBodyBytes = 8 << 20

// HTTPLoader downloads a page and parses it into a snapshot.
type HTTPLoader struct {
	client       *http.Client
	userAgent    string
	cookie       string
	maxBodyBytes int64
	logger       *slog.Logger
}

var _ source.Loader = (*HTTPLoader)(nil)

// NewHTTPLoader wires an HTTP client; client may be nil.
func NewHTTPLoader(client *http.Client, cfg config.FetchConfig, log *slog.Logger) *HTTPLoader {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
		if client.Timeout <= 0 {
			client.Timeout = 20 * time.Second
		}
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	return &HTTPLoader{
		client:       client,
		userAgent:    cfg.UserAgent,
		cookie:       cfg.Cookie,
		maxBodyBytes: maxBody,
		logger:       log,
	}
}

// Name identifies the loader inside the registry.
func (h *HTTPLoader) Name() string {
	return "http"
}

// Load fetches target and decodes it using the declared charset.
func (h *HTTPLoader) Load(ctx context.Context, target string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	if h.cookie != "" {
		req.Header.Set("Cookie", h.cookie)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("page returned %s", resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTML(contentType) {
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, h.maxBodyBytes), contentType)
	if err != nil {
		return nil, fmt.Errorf("decode charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	h.debug("page fetched", "url", target, "content_type", contentType)
	return doc, nil
}

func isHTML(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	return ct == "" || strings.HasPrefix(ct, "text/html") || strings.HasPrefix(ct, "application/xhtml+xml")
}

func (h *HTTPLoader) debug(msg string, args ...interface{}) {
	if h.logger != nil {
		h.logger.Debug(msg, args...)
	}
}
