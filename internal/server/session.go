package server

import (
	"context"
	"encoding/json"
	"errors"
	"pairing-hub/internal/hub"
	"pairing-hub/internal/identity"
	"pairing-hub/internal/transport"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const genericFailure = "An internal error occurred, please try again."

var errPanicked = errors.New("handler panicked")

// Response answers one request frame {"id", "method", "payload"}.
type Response struct {
	ID     string `json:"id"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

type session struct {
	logger   *zap.SugaredLogger
	caller   identity.Identity
	conn     *transport.Conn
	dispatch Dispatcher
}

func (s *session) handle(ctx context.Context, msg []byte) {
	if !gjson.ValidBytes(msg) {
		s.reply(Response{Error: "Malformed frame"})
		return
	}
	frame := gjson.ParseBytes(msg)
	id := frame.Get("id").String()
	method := frame.Get("method").String()
	if method == "" {
		s.reply(Response{ID: id, Error: "Missing method"})
		return
	}

	var payload []byte
	if p := frame.Get("payload"); p.Exists() {
		payload = []byte(p.Raw)
	}

	result, err := s.call(ctx, method, payload)
	resp := Response{ID: id, Result: result}
	if err != nil {
		if reason, ok := hub.IsRefusal(err); ok {
			resp.Error = reason
		} else {
			s.logger.Errorw("call failed", "uid", s.caller.UID, "method", method, "error", err)
			resp.Error = genericFailure
		}
	}
	s.reply(resp)
}

// call isolates a panicking handler so the connection survives it.
func (s *session) call(ctx context.Context, method string, payload []byte) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Errorw("call panicked", "uid", s.caller.UID, "method", method, "panic", rec)
			result, err = nil, errPanicked
		}
	}()
	return s.dispatch.Dispatch(ctx, s.caller, method, payload)
}

func (s *session) reply(resp Response) {
	frame, err := json.Marshal(resp)
	if err != nil {
		s.logger.Errorw("failed to encode response", "uid", s.caller.UID, "error", err)
		frame, _ = json.Marshal(Response{ID: resp.ID, Error: genericFailure})
	}
	s.conn.Send(frame)
}
