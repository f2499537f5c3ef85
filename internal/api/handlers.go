package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"

	"ZhihuClipper/internal/disguise"
	"ZhihuClipper/internal/infrastructure/fetcher"
	"ZhihuClipper/internal/source"
	"ZhihuClipper/internal/usecase"
)

// Error codes carried in error responses.
const (
	ErrorBadRequest       = "BAD_REQUEST"
	ErrorNotFound         = "NOT_FOUND"
	ErrorForbidden        = "FORBIDDEN"
	ErrorUnsupportedMedia = "UNSUPPORTED_MEDIA_TYPE"
	ErrorUnsupportedPage  = "UNSUPPORTED_PAGE"
	ErrorNothingToCopy    = "NOTHING_TO_COPY"
	ErrorClipboard        = "CLIPBOARD_FAILED"
	ErrorLoadFailed       = "LOAD_FAILED"
	ErrorInternal         = "INTERNAL_ERROR"
)

// Handler serves the panel endpoints.
type Handler struct {
	panel    *usecase.Panel
	streamer *usecase.Streamer
	logger   *slog.Logger
}

// NewHandler builds the HTTP handler set.
func NewHandler(panel *usecase.Panel, streamer *usecase.Streamer, log *slog.Logger) *Handler {
	return &Handler{panel: panel, streamer: streamer, logger: log}
}

type pageRequest struct {
	URL  string `json:"url"`
	HTML string `json:"html"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type contentResponse struct {
	Export string `json:"export"`
}

type copyResponse struct {
	Copied int `json:"copied"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": errorBody{Code: code, Message: message}})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Extract runs extraction on a URL or inline HTML and stores the result.
func (h *Handler) Extract(c *gin.Context) {
	req, ok := h.bindPage(c)
	if !ok {
		return
	}

	if req.HTML != "" {
		doc, err := fetcher.Parse(strings.NewReader(req.HTML))
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrorBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusOK, h.panel.ExtractDocument(doc))
		return
	}

	result, err := h.panel.Extract(c.Request.Context(), req.URL)
	if err != nil {
		h.respondLoadError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Content returns the stored export.
func (h *Handler) Content(c *gin.Context) {
	c.JSON(http.StatusOK, contentResponse{Export: h.panel.Content().Export})
}

// Clear drops the stored export.
func (h *Handler) Clear(c *gin.Context) {
	h.panel.Clear()
	c.Status(http.StatusNoContent)
}

// Copy writes the stored export to the system clipboard.
func (h *Handler) Copy(c *gin.Context) {
	text, err := h.panel.CopyAll(c.Request.Context())
	switch {
	case errors.Is(err, usecase.ErrNothingToCopy):
		respondError(c, http.StatusConflict, ErrorNothingToCopy, "no content has been extracted")
	case err != nil:
		respondError(c, http.StatusBadGateway, ErrorClipboard, err.Error())
	default:
		c.JSON(http.StatusOK, copyResponse{Copied: len([]rune(text))})
	}
}

// Disguise rewrites a page and returns it as HTML.
func (h *Handler) Disguise(c *gin.Context) {
	req, ok := h.bindPage(c)
	if !ok {
		return
	}

	var (
		out    string
		report disguise.Report
		err    error
	)
	if req.HTML != "" {
		var doc *goquery.Document
		doc, err = fetcher.Parse(strings.NewReader(req.HTML))
		if err != nil {
			respondError(c, http.StatusBadRequest, ErrorBadRequest, err.Error())
			return
		}
		out, report, err = h.panel.DisguiseDocument(doc)
	} else {
		out, report, err = h.panel.Disguise(c.Request.Context(), req.URL)
	}
	if err != nil {
		h.respondLoadError(c, err)
		return
	}

	c.Header("X-Disguise-Titles", strconv.Itoa(report.TitlesReplaced))
	c.Header("X-Disguise-Removed", strconv.Itoa(report.Removed))
	c.Header("X-Disguise-Hidden", strconv.Itoa(report.Hidden))
	c.Header("X-Disguise-Logos", strconv.Itoa(report.LogosReplaced))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}

// bindPage decodes a page request. Only http(s) URLs are accepted so the
// server never reads local files.
func (h *Handler) bindPage(c *gin.Context) (pageRequest, bool) {
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrorBadRequest, "invalid request body: "+err.Error())
		return req, false
	}

	req.URL = strings.TrimSpace(req.URL)
	switch {
	case req.HTML == "" && req.URL == "":
		respondError(c, http.StatusBadRequest, ErrorBadRequest, "url or html is required")
		return req, false
	case req.HTML == "" && !source.IsURL(req.URL):
		respondError(c, http.StatusBadRequest, ErrorBadRequest, "url must be absolute")
		return req, false
	}
	return req, true
}

func (h *Handler) respondLoadError(c *gin.Context, err error) {
	status, code := loadErrorStatus(err)
	if h.logger != nil && status >= http.StatusInternalServerError {
		h.logger.Warn("page load failed", "error", err)
	}
	respondError(c, status, code, err.Error())
}

func loadErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, source.ErrRestrictedPage), errors.Is(err, source.ErrUnsupportedSite):
		return http.StatusUnprocessableEntity, ErrorUnsupportedPage
	case errors.Is(err, usecase.ErrNoSource):
		return http.StatusInternalServerError, ErrorInternal
	default:
		return http.StatusBadGateway, ErrorLoadFailed
	}
}
