package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/s0up4200/filmreel/fetcher"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

// stateMessage is what the websocket pushes on every transition
type stateMessage struct {
	View  string        `json:"view"`
	State fetcher.State `json:"state"`
}

// websocketHandler streams controller snapshots, starting with the current one
func (s *Server) websocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already answered the client
		s.logger.Debug().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	states, unsubscribe := s.controller.Subscribe()
	defer unsubscribe()

	// Reading is only needed to notice the peer going away and to see pongs
	closed := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	s.logger.Debug().Str("remote", r.RemoteAddr).Msg("Websocket client connected")

	for {
		select {
		case <-closed:
			s.logger.Debug().Str("remote", r.RemoteAddr).Msg("Websocket client disconnected")
			return

		case <-s.baseCtx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(wsWriteWait))
			return

		case state, ok := <-states:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(stateMessage{View: ViewOf(state).String(), State: state}); err != nil {
				s.logger.Debug().Err(err).Msg("Websocket write failed")
				return
			}

		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}
