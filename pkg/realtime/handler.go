package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/teslashibe/go-handcar/internal/log"
	"github.com/teslashibe/go-handcar/pkg/actions"
)

// Invoker executes a named action with JSON arguments.
// session.Session implements it.
type Invoker interface {
	Invoke(ctx context.Context, name string, args []byte) (actions.Result, error)
}

// Sender writes one event to the assistant.
type Sender interface {
	Send(v any) error
}

// Config describes how the assistant session is configured.
type Config struct {
	Instructions string
	Voice        string

	// Tools defaults to actions.Tools().
	Tools []actions.Tool
}

// Handler is the transport-independent core: it configures the session and
// answers function calls by invoking actions.
type Handler struct {
	invoker Invoker
	cfg     Config
	logger  *slog.Logger

	// OnCall is invoked after every executed function call.
	OnCall func(name string, result actions.Result)

	// OnError is invoked for error events sent by the API.
	OnError func(err error)
}

// NewHandler creates a handler that routes function calls to invoker.
func NewHandler(invoker Invoker, cfg Config) *Handler {
	if cfg.Tools == nil {
		cfg.Tools = actions.Tools()
	}
	return &Handler{
		invoker: invoker,
		cfg:     cfg,
		logger:  log.With("component", "realtime"),
	}
}

// Configure sends the session.update event.
func (h *Handler) Configure(s Sender) error {
	h.logger.Info("configuring session", "tools", len(h.cfg.Tools))
	return s.Send(NewSessionUpdate(h.cfg.Instructions, h.cfg.Voice, h.cfg.Tools))
}

// Handle processes one inbound event. Unrelated event types are ignored.
func (h *Handler) Handle(ctx context.Context, s Sender, data []byte) error {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}

	switch ev.Type {
	case TypeFunctionCallArgsDone:
		var call FunctionCallArgumentsDone
		if err := json.Unmarshal(data, &call); err != nil {
			return fmt.Errorf("decode function call: %w", err)
		}
		return h.handleFunctionCall(ctx, s, call)

	case TypeSessionCreated, TypeSessionUpdated:
		h.logger.Debug("session event", "type", ev.Type)

	case TypeError:
		var e ErrorEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return fmt.Errorf("decode error event: %w", err)
		}
		err := fmt.Errorf("API error: %s", e.Error.Message)
		h.logger.Warn("realtime error", "type", e.Error.Type, "code", e.Error.Code, "message", e.Error.Message)
		if h.OnError != nil {
			h.OnError(err)
		}
	}
	return nil
}

// handleFunctionCall runs the action and reports its result. Calls naming an
// unknown action get no output.
func (h *Handler) handleFunctionCall(ctx context.Context, s Sender, call FunctionCallArgumentsDone) error {
	h.logger.Info("function call", "name", call.Name, "args", call.Arguments)

	result, err := h.invoker.Invoke(ctx, call.Name, []byte(call.Arguments))
	if errors.Is(err, actions.ErrUnknownAction) {
		h.logger.Warn("function not found", "name", call.Name)
		return nil
	}
	if err != nil {
		result = actions.Fail(err.Error())
	}

	if h.OnCall != nil {
		h.OnCall(call.Name, result)
	}

	output, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	h.logger.Debug("function result", "name", call.Name, "output", string(output))

	if err := s.Send(NewFunctionCallOutput(call.CallID, string(output))); err != nil {
		return fmt.Errorf("send function output: %w", err)
	}
	return s.Send(ResponseCreate{Type: TypeResponseCreate})
}
