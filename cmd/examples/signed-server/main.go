// Copyright (C) 2025 SAGE-X Project
//
// This file is part of inbenta-signature-go.
//
// inbenta-signature-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// inbenta-signature-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with inbenta-signature-go.  If not, see <https://www.gnu.org/licenses/>.

// Command signed-server is an A2A agent whose endpoints only answer
// requests carrying a valid Inbenta signature.
//
// The signature key comes from config.yaml or INBENTA_SIGNATURE_KEY:
//
//	INBENTA_SIGNATURE_KEY=my-signature-key go run ./cmd/examples/signed-server
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sage-x-project/inbenta-signature-go/pkg/config"
	"github.com/sage-x-project/inbenta-signature-go/pkg/logging"
	"github.com/sage-x-project/inbenta-signature-go/pkg/server"
	"github.com/sage-x-project/inbenta-signature-go/pkg/verifier"
)

const listenAddr = ":8080"

func main() {
	cfg, err := config.Load([]string{".", "/etc/inbenta"})
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Signature.Key == "" {
		log.Fatal("signature.key is required (set INBENTA_SIGNATURE_KEY)")
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	auth := server.NewSignatureAuthMiddleware([]byte(cfg.Signature.Key),
		verifier.WithMaxSkew(cfg.Signature.MaxSkew),
	)
	auth.SetLogger(logger)

	agent := newAgent("http://localhost"+listenAddr, logger)
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           agent.routes(auth),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("signed agent listening", zap.String("addr", listenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

type agent struct {
	url    string
	logger *zap.Logger

	mu    sync.Mutex
	tasks map[a2a.TaskID]*a2a.Task
}

func newAgent(url string, logger *zap.Logger) *agent {
	return &agent{url: url, logger: logger, tasks: map[a2a.TaskID]*a2a.Task{}}
}

func (a *agent) routes(auth *server.SignatureAuthMiddleware) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })

	r.Group(func(r chi.Router) {
		r.Use(auth.Wrap)
		r.Get("/.well-known/agent-card.json", a.agentCard)
		r.Post("/rpc", a.rpc)
	})
	return r
}

func (a *agent) agentCard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, &a2a.AgentCard{
		Name:               "Signed Echo Agent",
		Description:        "Echoes messages back to callers holding the shared signature key",
		URL:                a.url,
		PreferredTransport: a2a.TransportProtocolJSONRPC,
	})
}

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	ID      any             `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
	ID      any       `json:"id"`
}

func (a *agent) rpc(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, rpcResponse{JSONRPC: "2.0", Error: &rpcError{Code: -32700, Message: "Parse error"}})
		return
	}

	verification, _ := server.GetVerificationFromContext(r.Context())
	a.logger.Info("rpc call",
		zap.String(logging.SLRPCMethod, req.Method),
		zap.String(logging.SLSignatureVersion, verification.Version),
		zap.Int64(logging.SLTimestamp, verification.Timestamp))

	switch req.Method {
	case "message/send":
		task := a.newTask(a2a.TaskStateCompleted)
		writeJSON(w, rpcResponse{JSONRPC: "2.0", Result: task, ID: req.ID})

	case "message/stream":
		a.stream(w, req.ID)

	case "tasks/get", "tasks/cancel":
		var params a2a.TaskIDParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			writeJSON(w, rpcResponse{JSONRPC: "2.0", Error: &rpcError{Code: -32602, Message: "Invalid params"}, ID: req.ID})
			return
		}
		task, ok := a.task(params.ID, req.Method == "tasks/cancel")
		if !ok {
			writeJSON(w, rpcResponse{JSONRPC: "2.0", Error: &rpcError{Code: -32001, Message: "Task not found"}, ID: req.ID})
			return
		}
		writeJSON(w, rpcResponse{JSONRPC: "2.0", Result: task, ID: req.ID})

	default:
		writeJSON(w, rpcResponse{JSONRPC: "2.0", Error: &rpcError{Code: -32601, Message: "Method not found"}, ID: req.ID})
	}
}

// stream answers message/stream with Server-Sent Events. Flushing hands
// the response to the client unsigned.
func (a *agent) stream(w http.ResponseWriter, id any) {
	task := a.newTask(a2a.TaskStateSubmitted)

	w.Header().Set("Content-Type", "text/event-stream")
	w.WriteHeader(http.StatusOK)

	events := []any{
		task,
		&a2a.TaskStatusUpdateEvent{TaskID: task.ID, ContextID: task.ContextID, Status: a2a.TaskStatus{State: a2a.TaskStateWorking}},
		&a2a.TaskStatusUpdateEvent{TaskID: task.ID, ContextID: task.ContextID, Status: a2a.TaskStatus{State: a2a.TaskStateCompleted}, Final: true},
	}
	for _, event := range events {
		data, err := json.Marshal(rpcResponse{JSONRPC: "2.0", Result: event, ID: id})
		if err != nil {
			a.logger.Error("failed to encode event", zap.Error(err))
			return
		}
		_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
	a.setState(task.ID, a2a.TaskStateCompleted)
}

func (a *agent) newTask(state a2a.TaskState) *a2a.Task {
	task := a2a.Task{
		ID:        a2a.TaskID(uuid.NewString()),
		ContextID: uuid.NewString(),
		Status:    a2a.TaskStatus{State: state},
	}

	a.mu.Lock()
	stored := task
	a.tasks[task.ID] = &stored
	a.mu.Unlock()
	return &task
}

func (a *agent) task(id a2a.TaskID, cancel bool) (*a2a.Task, bool) {
	if cancel {
		a.setState(id, a2a.TaskStateCanceled)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	task, ok := a.tasks[id]
	if !ok {
		return nil, false
	}
	snapshot := *task
	return &snapshot, true
}

func (a *agent) setState(id a2a.TaskID, state a2a.TaskState) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if task, ok := a.tasks[id]; ok {
		task.Status = a2a.TaskStatus{State: state}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
