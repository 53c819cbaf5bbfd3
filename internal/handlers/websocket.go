package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Vlad1s43nko/LogisticsSystem/internal/chart"
)

const (
	themeFeedBuffer = 16
	writeWait       = 10 * time.Second
)

// ThemeMessage is one message of the theme feed
type ThemeMessage struct {
	Type string           `json:"type"`
	Data chart.ThemeEvent `json:"data"`
}

// ThemeFeed streams theme changes over a websocket. The current theme is sent
// first. A client that falls behind is disconnected.
func (h *HTTPHandler) ThemeFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	events, unsubscribe := h.widgets.SubscribeTheme(themeFeedBuffer)
	defer unsubscribe()

	// the read loop only notices when the client goes away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Warn("Theme feed read failed", "error", err)
				}
				return
			}
		}
	}()

	current := h.widgets.Theme()
	if err := writeThemeMessage(conn, ThemeMessage{Type: "theme", Data: chart.ThemeEvent{Previous: current, Current: current}}); err != nil {
		return
	}
	slog.Info("Theme feed client connected", "remote_addr", r.RemoteAddr)

	for {
		select {
		case event, ok := <-events:
			if !ok {
				slog.Warn("Theme feed client dropped", "remote_addr", r.RemoteAddr)
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := writeThemeMessage(conn, ThemeMessage{Type: "theme_changed", Data: event}); err != nil {
				return
			}
		case <-closed:
			slog.Info("Theme feed client disconnected", "remote_addr", r.RemoteAddr)
			return
		}
	}
}

func writeThemeMessage(conn *websocket.Conn, msg ThemeMessage) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		slog.Error("Theme feed write failed", "error", err)
		return err
	}
	return nil
}
