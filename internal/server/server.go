package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"pairing-hub/internal/config"
	"pairing-hub/internal/identity"
	"pairing-hub/internal/lifecycle"
	"pairing-hub/internal/transport"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

const (
	hubPath         = "/hub"
	shutdownTimeout = 10 * time.Second
	cleanupTimeout  = 5 * time.Second
)

// Dispatcher runs one client call.
type Dispatcher interface {
	Dispatch(ctx context.Context, caller identity.Identity, method string, payload []byte) (any, error)
}

type server struct {
	logger   *zap.SugaredLogger
	manager  *lifecycle.Manager
	dispatch Dispatcher
	connCfg  transport.Config
	mux      *http.ServeMux

	// sessions tracks hijacked connections, which http.Server.Shutdown ignores.
	sessions sync.WaitGroup
}

func newHandler(logger *zap.SugaredLogger, cfg config.Config, resolver *identity.Resolver, manager *lifecycle.Manager, dispatch Dispatcher) *server {
	connCfg := transport.DefaultConfig
	// Base64 inflates profile images by a third; leave room for the envelope.
	connCfg.ReadLimit = int64(cfg.Hub.ProfileMaxBytes)*4/3 + 64*1024

	s := &server{
		logger:   logger,
		manager:  manager,
		dispatch: dispatch,
		connCfg:  connCfg,
	}

	s.mux = http.NewServeMux()
	s.mux.Handle(hubPath, authMiddleware(logger, resolver)(http.HandlerFunc(s.upgrade)))
	return s
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// wait blocks until every session has run its disconnect cleanup or ctx ends.
func (s *server) wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.sessions.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunServer serves client websockets until ctx is done.
func RunServer(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, cfg config.Config,
	resolver *identity.Resolver, manager *lifecycle.Manager, dispatch Dispatcher) {

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		logger.Fatalw("failed to listen", "error", err)
	}

	handler := newHandler(logger, cfg, resolver, manager, dispatch)
	srv := &http.Server{
		Handler:     handler,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	logger.Infow("listening for websocket connections", "port", cfg.Port, "path", hubPath)

	go func() {
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("failed to serve", "error", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("failed to shut down websocket server", "error", err)
		}
		if err := handler.wait(shutdownCtx); err != nil {
			logger.Warnw("sessions still open after shutdown timeout", "error", err)
		}
	}()
}

func (s *server) upgrade(w http.ResponseWriter, r *http.Request) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	s.sessions.Add(1)
	defer s.sessions.Done()

	ws, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warnw("failed to accept websocket", "uid", id.UID, "error", err)
		return
	}

	conn := transport.NewConn(r.Context(), s.logger.With("uid", id.UID), ws, s.connCfg)
	if err := s.manager.Connect(r.Context(), id, conn.ID(), conn); err != nil {
		s.logger.Errorw("failed to register connection", "uid", id.UID, "error", err)
		conn.Close("registration failed")
		conn.Run(func(context.Context, []byte) {})
		return
	}

	session := &session{logger: s.logger, caller: id, conn: conn, dispatch: s.dispatch}
	conn.Run(session.handle)

	// Cleanup runs even when the server is shutting down.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), cleanupTimeout)
	defer cancel()
	s.manager.Disconnect(ctx, id.UID, conn.ID())
}
