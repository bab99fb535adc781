package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"pairing-hub/internal/config"
	"pairing-hub/internal/hub"
	"pairing-hub/internal/identity"
	"pairing-hub/internal/lifecycle"
	"pairing-hub/internal/presence"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, uid string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, identity.Claims{
		UID:              uid,
		RegisteredClaims: jwt.RegisteredClaims{ID: "session-" + uid},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	resolver := identity.NewResolver(testSecret)

	tests := []struct {
		name    string
		prepare func(r *http.Request)
		want    int
		wantUID string
	}{
		{
			name:    "no token",
			prepare: func(*http.Request) {},
			want:    http.StatusUnauthorized,
		},
		{
			name: "bad token",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not-a-token")
			},
			want: http.StatusUnauthorized,
		},
		{
			name: "bearer header",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+signToken(t, "U1"))
			},
			want:    http.StatusOK,
			wantUID: "U1",
		},
		{
			name: "query parameter",
			prepare: func(r *http.Request) {
				q := r.URL.Query()
				q.Set("access_token", signToken(t, "U2"))
				r.URL.RawQuery = q.Encode()
			},
			want:    http.StatusOK,
			wantUID: "U2",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotUID string
			handler := authMiddleware(zap.NewNop().Sugar(), resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, ok := identity.FromContext(r.Context())
				require.True(t, ok)
				gotUID = id.UID
			}))

			req := httptest.NewRequest(http.MethodGet, hubPath, nil)
			tc.prepare(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, tc.wantUID, gotUID)
		})
	}
}

type noopHooks struct{}

func (noopHooks) InitCaches(context.Context, string) error           { return nil }
func (noopHooks) DisposeCaches(string)                               {}
func (noopHooks) NotifyOnline(context.Context, string, string) error { return nil }
func (noopHooks) NotifyOffline(context.Context, string) error        { return nil }

type stubDispatcher struct{}

func (stubDispatcher) Dispatch(_ context.Context, caller identity.Identity, method string, payload []byte) (any, error) {
	switch method {
	case "Whoami":
		return caller.UID, nil
	case "Echo":
		return json.RawMessage(payload), nil
	case "Refuse":
		return nil, &hub.Error{Reason: "No permission to change U2!"}
	case "Fail":
		return nil, errors.New("mongo: connection reset")
	case "Panic":
		panic("nil map")
	}
	return nil, nil
}

func TestServer_Frames(t *testing.T) {
	mockCntrl := gomock.NewController(t)
	dir := presence.NewMockDirectory(mockCntrl)

	var registered presence.Entry
	cleared := make(chan presence.Entry, 1)
	dir.EXPECT().SetOnline(gomock.Any(), "U1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, entry presence.Entry) error {
			registered = entry
			return nil
		})
	dir.EXPECT().ClearSession(gomock.Any(), "U1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, entry presence.Entry) (bool, error) {
			cleared <- entry
			return true, nil
		})

	logger := zap.NewNop().Sugar()
	manager := lifecycle.NewManager(logger, dir)
	manager.SetHooks(noopHooks{})

	cfg := config.Config{Hub: config.HubConfig{ProfileMaxBytes: 1024}}
	srv := httptest.NewServer(newHandler(logger, cfg, identity.NewResolver(testSecret), manager, stubDispatcher{}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+signToken(t, "U1"))
	client, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+hubPath,
		&websocket.DialOptions{HTTPHeader: header})
	require.NoError(t, err)

	tests := []struct {
		name    string
		request string
		want    string
	}{
		{name: "result", request: `{"id":"1","method":"Whoami"}`, want: `{"id":"1","result":"U1"}`},
		{name: "payload passed through", request: `{"id":"2","method":"Echo","payload":{"a":[1,2]}}`, want: `{"id":"2","result":{"a":[1,2]}}`},
		{name: "refusal", request: `{"id":"3","method":"Refuse"}`, want: `{"id":"3","error":"No permission to change U2!"}`},
		{name: "infrastructure error hidden", request: `{"id":"4","method":"Fail"}`, want: `{"id":"4","error":"` + genericFailure + `"}`},
		{name: "panic contained", request: `{"id":"5","method":"Panic"}`, want: `{"id":"5","error":"` + genericFailure + `"}`},
		{name: "missing method", request: `{"id":"6"}`, want: `{"id":"6","error":"Missing method"}`},
		{name: "malformed frame", request: `{"id":`, want: `{"id":"","error":"Malformed frame"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, client.Write(ctx, websocket.MessageText, []byte(tc.request)))
			_, got, err := client.Read(ctx)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(got))
		})
	}

	assert.True(t, manager.IsLocal("U1"))
	require.NoError(t, client.Close(websocket.StatusNormalClosure, ""))

	select {
	case entry := <-cleared:
		assert.Equal(t, "session-U1", entry.Session)
		assert.NotEmpty(t, entry.ConnID)
		assert.Equal(t, registered, entry)
	case <-ctx.Done():
		t.Fatal("disconnect cleanup did not run")
	}
	assert.Eventually(t, func() bool { return !manager.IsLocal("U1") }, time.Second, 10*time.Millisecond)
}

func TestServer_RejectsUnauthenticatedUpgrade(t *testing.T) {
	logger := zap.NewNop().Sugar()
	manager := lifecycle.NewManager(logger, presence.NewMockDirectory(gomock.NewController(t)))
	srv := httptest.NewServer(newHandler(logger, config.Config{}, identity.NewResolver(testSecret), manager, stubDispatcher{}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, resp, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+hubPath, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
