package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"ZhihuClipper/internal/domain"
	"ZhihuClipper/internal/source"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return allowedOrigin(r.Header.Get("Origin"), r.Host)
	},
}

type doneFrame struct {
	Done  bool   `json:"done"`
	Lines int    `json:"lines"`
	Error string `json:"error,omitempty"`
}

// PanelSocket streams panel lines one frame per line. With ?url= the page is
// extracted first; without it the stored content is replayed.
func (h *Handler) PanelSocket(c *gin.Context) {
	target := strings.TrimSpace(c.Query("url"))
	if target != "" && !source.IsURL(target) {
		respondError(c, http.StatusBadRequest, ErrorBadRequest, "url must be absolute")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Warn("websocket upgrade failed", "error", err)
		}
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	sent := 0
	emit := func(line domain.PanelLine) error {
		if err := writeFrame(conn, line); err != nil {
			return err
		}
		sent++
		return nil
	}

	if target != "" {
		_, err = h.streamer.Stream(ctx, target, emit)
	} else {
		err = h.streamer.Play(ctx, h.panel.Content(), emit)
	}

	done := doneFrame{Done: true, Lines: sent}
	if err != nil {
		done.Error = err.Error()
		if h.logger != nil {
			h.logger.Warn("panel stream stopped", "error", err, "lines", sent)
		}
	}
	_ = writeFrame(conn, done)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}

func writeFrame(conn *websocket.Conn, v interface{}) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}
