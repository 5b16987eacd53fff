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
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"

	"github.com/a2aproject/a2a-go/a2a"
	"go.uber.org/zap"

	"github.com/sage-x-project/inbenta-signature-go/pkg/headers"
	"github.com/sage-x-project/inbenta-signature-go/pkg/logging"
)

// sseEvent is a single Server-Sent Event
type sseEvent struct {
	Event string
	Data  []byte
	ID    string
}

// readSSE splits an event stream into events. Multi-line data fields are
// joined with \n, comments and unknown fields are skipped.
func readSSE(ctx context.Context, r io.Reader) iter.Seq2[sseEvent, error] {
	return func(yield func(sseEvent, error) bool) {
		reader := bufio.NewReader(r)
		var current sseEvent
		var data bytes.Buffer

		for {
			if err := ctx.Err(); err != nil {
				yield(sseEvent{}, err)
				return
			}

			line, err := reader.ReadBytes('\n')
			if err != nil && (err != io.EOF || len(line) == 0) {
				if err != io.EOF {
					yield(sseEvent{}, fmt.Errorf("error reading SSE stream: %w", err))
				}
				return
			}
			line = bytes.TrimRight(line, "\r\n")

			if len(line) == 0 {
				if data.Len() > 0 {
					current.Data = bytes.Clone(data.Bytes())
					data.Reset()
					if !yield(current, nil) {
						return
					}
				}
				current = sseEvent{}
				continue
			}

			field, value, _ := bytes.Cut(line, []byte(":"))
			value = bytes.TrimPrefix(value, []byte(" "))

			switch string(field) {
			case "":
				// comment line
			case "event":
				current.Event = string(value)
			case "data":
				if data.Len() > 0 {
					data.WriteByte('\n')
				}
				data.Write(value)
			case "id":
				current.ID = string(value)
			}
		}
	}
}

// parseSSEData unwraps the JSON-RPC response carried by one event.
func parseSSEData(data []byte) (a2a.Event, error) {
	var rpcResp jsonRPCResponse
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		return nil, fmt.Errorf("failed to parse SSE JSON-RPC response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("in SSE stream: %w", rpcResp.Error)
	}
	return decodeEvent(rpcResp.Result)
}

// decodeEvent decodes an A2A event by its kind discriminator, falling back
// to the fields that only one event type carries.
func decodeEvent(raw json.RawMessage) (a2a.Event, error) {
	var probe struct {
		Kind      string          `json:"kind"`
		MessageID json.RawMessage `json:"messageId"`
		Artifact  json.RawMessage `json:"artifact"`
		TaskID    json.RawMessage `json:"taskId"`
		ID        json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse event: %w", err)
	}

	kind := probe.Kind
	if kind == "" {
		switch {
		case probe.MessageID != nil:
			kind = "message"
		case probe.Artifact != nil:
			kind = "artifact-update"
		case probe.TaskID != nil:
			kind = "status-update"
		case probe.ID != nil:
			kind = "task"
		}
	}

	var event a2a.Event
	switch kind {
	case "message":
		event = &a2a.Message{}
	case "task":
		event = &a2a.Task{}
	case "status-update":
		event = &a2a.TaskStatusUpdateEvent{}
	case "artifact-update":
		event = &a2a.TaskArtifactUpdateEvent{}
	default:
		return nil, fmt.Errorf("unknown event kind %q", kind)
	}

	if err := json.Unmarshal(raw, event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s event: %w", kind, err)
	}
	return event, nil
}

// callSSE makes a signed JSON-RPC call answered with an event stream.
func (t *SignedHTTPTransport) callSSE(ctx context.Context, method string, params any) iter.Seq2[a2a.Event, error] {
	return func(yield func(a2a.Event, error) bool) {
		req, timestamp, err := t.newRPCRequest(ctx, method, params)
		if err != nil {
			yield(nil, err)
			return
		}
		req.Header.Set("Accept", "text/event-stream")

		resp, err := t.httpClient.Do(req)
		if err != nil {
			yield(nil, fmt.Errorf("HTTP request failed: %w", err))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			yield(nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status))
			return
		}

		contentType := resp.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "text/event-stream") {
			yield(nil, fmt.Errorf("unexpected Content-Type: %s, expected text/event-stream", contentType))
			return
		}

		t.logger.Debug("streaming events",
			zap.String(logging.SLRPCMethod, method),
			zap.Int64(logging.SLTimestamp, timestamp),
			zap.Bool("signed", resp.Header.Get(headers.HeaderSignature.String()) != ""))

		for ev, err := range readSSE(ctx, resp.Body) {
			if err != nil {
				yield(nil, err)
				return
			}
			event, err := parseSSEData(ev.Data)
			if !yield(event, err) {
				return
			}
		}
	}
}
