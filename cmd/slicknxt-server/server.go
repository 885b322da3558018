package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/fairlight1337/slicknxt/internal/app/dto"
	"github.com/fairlight1337/slicknxt/internal/app/usecases"
	"github.com/fairlight1337/slicknxt/internal/core/flow"
	"github.com/fairlight1337/slicknxt/internal/core/node"
	"github.com/fairlight1337/slicknxt/internal/hardware"
)

// currentFlowID is the store slot the editor's save/load endpoints use.
const currentFlowID = "current"

// Server wires the engine, the flow store, and the hardware monitor into
// HTTP handlers.
type Server struct {
	engine   usecases.FlowEngine
	store    usecases.FlowRepository
	monitor  *hardware.Monitor
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	states map[string]node.State
}

// NewServer creates a server and subscribes it to the engine so node state
// queries serve the latest snapshot.
func NewServer(engine usecases.FlowEngine, store usecases.FlowRepository, monitor *hardware.Monitor) *Server {
	s := &Server{
		engine:  engine,
		store:   store,
		monitor: monitor,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for development
			},
		},
		states: make(map[string]node.State),
	}
	engine.Subscribe(func(nodeID string, state node.State) error {
		s.mu.Lock()
		s.states[nodeID] = state
		s.mu.Unlock()
		return nil
	})
	return s
}

// Routes builds the HTTP mux.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "SlickNXT server is running. See /healthz, /debug/vars, /debug/pprof/")
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})
	mux.HandleFunc("GET /metrics", promMetricsHandler)

	mux.HandleFunc("POST /api/flows/save", s.handleSaveFlow)
	mux.HandleFunc("GET /api/flows/load", s.handleLoadFlow)

	mux.HandleFunc("POST /api/engine/load", s.handleEngineLoad)
	mux.HandleFunc("POST /api/engine/run", s.handleEngineRun)
	mux.HandleFunc("POST /api/engine/stop", s.handleEngineStop)
	mux.HandleFunc("GET /api/engine/status", s.handleEngineStatus)

	mux.HandleFunc("POST /api/nodes/{id}/input", s.handleUserInput)
	mux.HandleFunc("GET /api/nodes/{id}/state", s.handleNodeState)

	mux.HandleFunc("GET /api/hardware", s.handleHardware)
	mux.HandleFunc("GET /ws", s.handleWebSocket)

	// pprof and expvar register on the default mux.
	mux.Handle("GET /debug/", http.DefaultServeMux)

	return mux
}

func (s *Server) handleSaveFlow(w http.ResponseWriter, r *http.Request) {
	var d dto.FlowDescription
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.store.Save(r.Context(), currentFlowID, &d); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]string{"status": "success", "message": "Flow saved successfully"})
}

func (s *Server) handleLoadFlow(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), currentFlowID)
	if err != nil {
		if errors.Is(err, flow.ErrFlowNotFound) {
			writeJSON(w, &dto.FlowDescription{Nodes: []dto.NodeDescription{}, Edges: []dto.EdgeDescription{}})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, d)
}

// handleEngineLoad installs a flow into the engine: either the request body,
// or the stored "current" flow when the body is empty.
func (s *Server) handleEngineLoad(w http.ResponseWriter, r *http.Request) {
	var d dto.FlowDescription
	err := json.NewDecoder(r.Body).Decode(&d)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		stored, gerr := s.store.Get(r.Context(), currentFlowID)
		if gerr != nil {
			http.Error(w, "no flow in request and none stored", http.StatusBadRequest)
			return
		}
		d = *stored
	default:
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, lerr := s.engine.Load(r.Context(), &d)
	if lerr != nil {
		http.Error(w, lerr.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.states = make(map[string]node.State)
	s.mu.Unlock()

	writeJSON(w, result)
}

func (s *Server) handleEngineRun(w http.ResponseWriter, r *http.Request) {
	go func() {
		if err := s.engine.Run(context.Background()); err != nil && !errors.Is(err, usecases.ErrAlreadyRunning) {
			log.Printf("engine run ended: %v", err)
		}
	}()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "running"})
}

func (s *Server) handleEngineStop(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Stop(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"status": "stopped"})
}

func (s *Server) handleEngineStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.engine.Status(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, status)
}

func (s *Server) handleUserInput(w http.ResponseWriter, r *http.Request) {
	nodeID := r.PathValue("id")
	var req struct {
		Control string `json:"control"`
		Value   any    `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.engine.SubmitUserInput(r.Context(), nodeID, req.Control, req.Value); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, flow.ErrNodeNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, map[string]string{"status": "success"})
}

func (s *Server) handleNodeState(w http.ResponseWriter, r *http.Request) {
	nodeID := r.PathValue("id")
	s.mu.RLock()
	state, ok := s.states[nodeID]
	s.mu.RUnlock()
	if !ok {
		writeJSON(w, map[string]any{})
		return
	}
	writeJSON(w, state)
}

func (s *Server) handleHardware(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.monitor.Current())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
