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

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"

	"github.com/a2aproject/a2a-go/a2a"
	"github.com/a2aproject/a2a-go/a2aclient"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sage-x-project/inbenta-signature-go/pkg/client"
	"github.com/sage-x-project/inbenta-signature-go/pkg/headers"
	"github.com/sage-x-project/inbenta-signature-go/pkg/logging"
)

// DefaultRPCPath is where JSON-RPC calls are posted, relative to the base URL.
const DefaultRPCPath = "/rpc"

// SignedHTTPTransport implements a2aclient.Transport for HTTP/JSON-RPC 2.0
// with Inbenta signature headers on every request.
//
// Responses to unary calls are validated against the timestamp of the
// request that produced them. Streamed responses are not validated.
type SignedHTTPTransport struct {
	baseURL           string
	rpcPath           string
	client            *client.Client
	httpClient        *http.Client
	validateResponses bool
	logger            *zap.Logger
}

// Option configures a SignedHTTPTransport
type Option func(*SignedHTTPTransport)

// WithHTTPClient sets the HTTP client used for all calls
func WithHTTPClient(httpClient *http.Client) Option {
	return func(t *SignedHTTPTransport) {
		if httpClient != nil {
			t.httpClient = httpClient
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(t *SignedHTTPTransport) {
		t.logger = logging.OrNop(logger)
	}
}

// WithResponseValidation toggles response signature validation. It is on
// by default.
func WithResponseValidation(enabled bool) Option {
	return func(t *SignedHTTPTransport) {
		t.validateResponses = enabled
	}
}

// WithRPCPath changes the JSON-RPC endpoint path
func WithRPCPath(path string) Option {
	return func(t *SignedHTTPTransport) {
		if path != "" {
			t.rpcPath = path
		}
	}
}

// NewSignedHTTPTransport creates a transport for the agent at baseURL that
// signs with c.
func NewSignedHTTPTransport(baseURL string, c *client.Client, opts ...Option) a2aclient.Transport {
	t := &SignedHTTPTransport{
		baseURL:           baseURL,
		rpcPath:           DefaultRPCPath,
		client:            c,
		httpClient:        http.DefaultClient,
		validateResponses: true,
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// jsonRPCRequest represents a JSON-RPC 2.0 request
type jsonRPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
	ID      string `json:"id"`
}

// jsonRPCResponse represents a JSON-RPC 2.0 response
type jsonRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonRPCError   `json:"error,omitempty"`
	ID      any             `json:"id"`
}

// jsonRPCError represents a JSON-RPC 2.0 error
type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *jsonRPCError) Error() string {
	return fmt.Sprintf("JSON-RPC error %d: %s", e.Code, e.Message)
}

// newRPCRequest builds a signed JSON-RPC POST. The returned timestamp is the
// one covered by the request signature.
func (t *SignedHTTPTransport) newRPCRequest(ctx context.Context, method string, params any) (*http.Request, int64, error) {
	body, err := json.Marshal(jsonRPCRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      uuid.NewString(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal JSON-RPC request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+t.rpcPath, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	timestamp, err := t.sign(req)
	if err != nil {
		return nil, 0, err
	}
	return req, timestamp, nil
}

func (t *SignedHTTPTransport) sign(req *http.Request) (int64, error) {
	if t.client == nil {
		return 0, fmt.Errorf("failed to sign request: signature client not configured")
	}
	if err := t.client.SignRequest(client.FromHTTPRequest(req), 0); err != nil {
		return 0, fmt.Errorf("failed to sign request: %w", err)
	}
	signed, err := headers.FromHeader(req.Header)
	if err != nil {
		return 0, fmt.Errorf("failed to sign request: %w", err)
	}
	return signed.Timestamp, nil
}

// do executes req and returns the body of a 200 response whose signature
// checks out.
func (t *SignedHTTPTransport) do(req *http.Request, timestamp int64) ([]byte, error) {
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s: %s", resp.StatusCode, resp.Status, string(respBody))
	}

	if t.validateResponses {
		valid, err := t.client.ValidateResponseSignatureAt(resp.Header.Get(headers.HeaderSignature.String()), respBody, timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to validate response: %w", err)
		}
		if !valid {
			t.logger.Warn("rejected response with invalid signature",
				zap.String(logging.SLMethod, req.Method),
				zap.String(logging.SLPath, req.URL.Path),
				zap.Int64(logging.SLTimestamp, timestamp))
			return nil, fmt.Errorf("%w: %s %s", client.ErrInvalidResponseSignature, req.Method, req.URL.Path)
		}
	}

	return respBody, nil
}

// call makes a signed JSON-RPC 2.0 call and returns the raw result
func (t *SignedHTTPTransport) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	req, timestamp, err := t.newRPCRequest(ctx, method, params)
	if err != nil {
		return nil, err
	}

	t.logger.Debug("calling agent",
		zap.String(logging.SLRPCMethod, method),
		zap.Int64(logging.SLTimestamp, timestamp))

	respBody, err := t.do(req, timestamp)
	if err != nil {
		return nil, err
	}

	var rpcResp jsonRPCResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("failed to parse JSON-RPC response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}

	return rpcResp.Result, nil
}

// GetTask implements the 'tasks/get' protocol method.
func (t *SignedHTTPTransport) GetTask(ctx context.Context, query *a2a.TaskQueryParams) (*a2a.Task, error) {
	result, err := t.call(ctx, "tasks/get", query)
	if err != nil {
		return nil, err
	}

	var task a2a.Task
	if err := json.Unmarshal(result, &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Task: %w", err)
	}
	return &task, nil
}

// CancelTask implements the 'tasks/cancel' protocol method.
func (t *SignedHTTPTransport) CancelTask(ctx context.Context, id *a2a.TaskIDParams) (*a2a.Task, error) {
	result, err := t.call(ctx, "tasks/cancel", id)
	if err != nil {
		return nil, err
	}

	var task a2a.Task
	if err := json.Unmarshal(result, &task); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Task: %w", err)
	}
	return &task, nil
}

// SendMessage implements the 'message/send' protocol method (non-streaming).
// The result is either a Task or a Message.
func (t *SignedHTTPTransport) SendMessage(ctx context.Context, message *a2a.MessageSendParams) (a2a.SendMessageResult, error) {
	result, err := t.call(ctx, "message/send", message)
	if err != nil {
		return nil, err
	}

	event, err := decodeEvent(result)
	if err != nil {
		return nil, err
	}

	switch v := event.(type) {
	case *a2a.Message:
		return v, nil
	case *a2a.Task:
		return v, nil
	default:
		return nil, fmt.Errorf("result is neither Task nor Message")
	}
}

// ResubscribeToTask implements the 'tasks/resubscribe' protocol method over SSE.
func (t *SignedHTTPTransport) ResubscribeToTask(ctx context.Context, id *a2a.TaskIDParams) iter.Seq2[a2a.Event, error] {
	return t.callSSE(ctx, "tasks/resubscribe", id)
}

// SendStreamingMessage implements the 'message/stream' protocol method over SSE.
func (t *SignedHTTPTransport) SendStreamingMessage(ctx context.Context, message *a2a.MessageSendParams) iter.Seq2[a2a.Event, error] {
	return t.callSSE(ctx, "message/stream", message)
}

// GetTaskPushConfig implements the 'tasks/pushNotificationConfig/get' protocol method.
func (t *SignedHTTPTransport) GetTaskPushConfig(ctx context.Context, params *a2a.GetTaskPushConfigParams) (*a2a.TaskPushConfig, error) {
	result, err := t.call(ctx, "tasks/pushNotificationConfig/get", params)
	if err != nil {
		return nil, err
	}

	var config a2a.TaskPushConfig
	if err := json.Unmarshal(result, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal TaskPushConfig: %w", err)
	}
	return &config, nil
}

// ListTaskPushConfig implements the 'tasks/pushNotificationConfig/list' protocol method.
func (t *SignedHTTPTransport) ListTaskPushConfig(ctx context.Context, params *a2a.ListTaskPushConfigParams) ([]*a2a.TaskPushConfig, error) {
	result, err := t.call(ctx, "tasks/pushNotificationConfig/list", params)
	if err != nil {
		return nil, err
	}

	var configs []*a2a.TaskPushConfig
	if err := json.Unmarshal(result, &configs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal TaskPushConfig list: %w", err)
	}
	return configs, nil
}

// SetTaskPushConfig implements the 'tasks/pushNotificationConfig/set' protocol method.
func (t *SignedHTTPTransport) SetTaskPushConfig(ctx context.Context, config *a2a.TaskPushConfig) (*a2a.TaskPushConfig, error) {
	result, err := t.call(ctx, "tasks/pushNotificationConfig/set", config)
	if err != nil {
		return nil, err
	}

	var saved a2a.TaskPushConfig
	if err := json.Unmarshal(result, &saved); err != nil {
		return nil, fmt.Errorf("failed to unmarshal TaskPushConfig: %w", err)
	}
	return &saved, nil
}

// DeleteTaskPushConfig implements the 'tasks/pushNotificationConfig/delete' protocol method.
func (t *SignedHTTPTransport) DeleteTaskPushConfig(ctx context.Context, params *a2a.DeleteTaskPushConfigParams) error {
	_, err := t.call(ctx, "tasks/pushNotificationConfig/delete", params)
	return err
}

// GetAgentCard fetches the agent card from the well-known URL with a signed GET.
func (t *SignedHTTPTransport) GetAgentCard(ctx context.Context) (*a2a.AgentCard, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/.well-known/agent-card.json", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	timestamp, err := t.sign(req)
	if err != nil {
		return nil, err
	}

	body, err := t.do(req, timestamp)
	if err != nil {
		return nil, err
	}

	var card a2a.AgentCard
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, fmt.Errorf("failed to decode agent card: %w", err)
	}
	return &card, nil
}

// Destroy cleans up resources (HTTP client doesn't need cleanup).
func (t *SignedHTTPTransport) Destroy() error {
	return nil
}
