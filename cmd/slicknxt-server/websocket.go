package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/fairlight1337/slicknxt/internal/core/node"
	"github.com/fairlight1337/slicknxt/internal/hardware"
)

// outboundBuffer bounds the per-client send queue. A client that cannot keep
// up with the tick rate drops frames rather than stalling the engine.
const outboundBuffer = 256

var errClientGone = errors.New("websocket client gone")

type wsMessage struct {
	Type   string           `json:"type"`
	NodeID string           `json:"nodeId,omitempty"`
	State  *node.State      `json:"state,omitempty"`
	Config *hardware.Config `json:"config,omitempty"`
}

type wsUserInput struct {
	Type    string `json:"type"`
	NodeID  string `json:"nodeId"`
	Control string `json:"control"`
	Value   any    `json:"value"`
}

// handleWebSocket streams node state updates and hardware configuration
// changes to a client and accepts user input messages from it.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	out := make(chan wsMessage, outboundBuffer)
	quit := make(chan struct{})   // read loop exited
	failed := make(chan struct{}) // write loop exited
	defer close(quit)

	send := func(msg wsMessage) error {
		select {
		case <-quit:
			return errClientGone
		case <-failed:
			return errClientGone
		default:
		}
		select {
		case out <- msg:
		default:
			// Queue full: drop the frame, the next tick supersedes it.
		}
		return nil
	}

	subID := s.engine.Subscribe(func(nodeID string, state node.State) error {
		return send(wsMessage{Type: "node_state_update", NodeID: nodeID, State: &state})
	})
	defer s.engine.Unsubscribe(subID)

	hwID := s.monitor.Subscribe(func(cfg hardware.Config) {
		_ = send(wsMessage{Type: "hardware_config", Config: &cfg})
	})
	defer s.monitor.Unsubscribe(hwID)

	go func() {
		defer close(failed)
		for {
			select {
			case <-quit:
				return
			case msg := <-out:
				if err := conn.WriteJSON(msg); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws: read failed: %v", err)
			}
			return
		}
		var in wsUserInput
		if err := json.Unmarshal(data, &in); err != nil || in.Type != "user_input" {
			continue
		}
		if err := s.engine.SubmitUserInput(r.Context(), in.NodeID, in.Control, in.Value); err != nil {
			log.Printf("ws: user input for %q rejected: %v", in.NodeID, err)
		}
	}
}
