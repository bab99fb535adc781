package lifecycle

import (
	"context"
	"pairing-hub/internal/identity"
	"pairing-hub/internal/presence"
	"sync"

	"go.uber.org/zap"
)

// Sender is the outbound half of a client connection.
type Sender interface {
	// Send queues frame without blocking and reports whether it was accepted.
	Send(frame []byte) bool
	Close(reason string)
}

// Hooks are run on the first registration and the final disconnect of a user
// on this process.
type Hooks interface {
	InitCaches(ctx context.Context, uid string) error
	DisposeCaches(uid string)
	NotifyOnline(ctx context.Context, uid string, session string) error
	NotifyOffline(ctx context.Context, uid string) error
}

type entry struct {
	connID  string
	session string
	sender  Sender
}

// Manager owns the table of users connected to this process. The table is
// never exposed; the mutex only guards map reads and swaps.
type Manager struct {
	logger *zap.SugaredLogger
	dir    presence.Directory
	hooks  Hooks

	mu    sync.Mutex
	conns map[string]entry
}

func NewManager(logger *zap.SugaredLogger, dir presence.Directory) *Manager {
	return &Manager{
		logger: logger,
		dir:    dir,
		conns:  make(map[string]entry),
	}
}

// SetHooks must be called before the first Connect.
func (m *Manager) SetHooks(hooks Hooks) {
	m.hooks = hooks
}

// Connect registers a connection. A second connection for the same user
// replaces the first.
func (m *Manager) Connect(ctx context.Context, id identity.Identity, connID string, sender Sender) error {
	next := entry{connID: connID, session: id.Session, sender: sender}

	m.mu.Lock()
	prev, exists := m.conns[id.UID]
	m.conns[id.UID] = next
	m.mu.Unlock()

	if err := m.dir.SetOnline(ctx, id.UID, presence.Entry{Session: id.Session, ConnID: connID}); err != nil {
		if exists {
			m.restore(id.UID, connID, prev)
		} else {
			m.remove(id.UID, connID)
		}
		return err
	}

	switch {
	case exists && prev.connID == connID:
		m.logger.Debugw("duplicate connect", "uid", id.UID, "connId", connID)
		return nil
	case exists:
		m.logger.Warnw("connection taken over", "uid", id.UID, "oldConnId", prev.connID, "newConnId", connID)
		prev.sender.Close("connected from another session")
		return nil
	}

	if err := m.hooks.InitCaches(ctx, id.UID); err != nil {
		m.logger.Errorw("failed to init caches", "uid", id.UID, "error", err)
	}
	if err := m.hooks.NotifyOnline(ctx, id.UID, id.Session); err != nil {
		m.logger.Errorw("failed to notify pairs of connect", "uid", id.UID, "error", err)
	}
	m.logger.Infow("user connected", "uid", id.UID, "connId", connID, "region", id.Region)
	return nil
}

// Disconnect cleans up after connID, unless the user has since connected
// again. Pairs are told the user went offline only when this connection still
// owned the directory entry, or when that could not be checked. Cleanup
// failures are logged and the table entry is always removed.
func (m *Manager) Disconnect(ctx context.Context, uid string, connID string) {
	m.mu.Lock()
	current, ok := m.conns[uid]
	m.mu.Unlock()
	if !ok || current.connID != connID {
		m.logger.Debugw("stale disconnect ignored", "uid", uid, "connId", connID)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorw("panic during disconnect cleanup", "uid", uid, "panic", r)
		}
		m.remove(uid, connID)
		m.logger.Infow("user disconnected", "uid", uid, "connId", connID)
	}()

	m.hooks.DisposeCaches(uid)

	cleared, err := m.dir.ClearSession(ctx, uid, presence.Entry{Session: current.session, ConnID: connID})
	if err != nil {
		m.logger.Errorw("failed to clear presence", "uid", uid, "error", err)
	} else if !cleared {
		m.logger.Infow("user reconnected elsewhere, skipping offline notification", "uid", uid, "connId", connID)
		return
	}

	if err := m.hooks.NotifyOffline(ctx, uid); err != nil {
		m.logger.Errorw("failed to notify pairs of disconnect", "uid", uid, "error", err)
	}
}

// remove deletes the entry only if it still belongs to connID.
func (m *Manager) remove(uid string, connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.conns[uid]; ok && e.connID == connID {
		delete(m.conns, uid)
	}
}

// restore puts prev back only if the entry still belongs to connID.
func (m *Manager) restore(uid string, connID string, prev entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.conns[uid]; ok && e.connID == connID {
		m.conns[uid] = prev
	}
}

// SendLocalTo delivers frame to uid's connection on this process. A non-empty
// connID must match the held connection, so a stale socket never receives
// pushes meant for a newer connection elsewhere. It reports whether the frame
// was handed to a matching connection; a full queue still counts.
func (m *Manager) SendLocalTo(uid string, connID string, frame []byte) bool {
	m.mu.Lock()
	e, ok := m.conns[uid]
	m.mu.Unlock()
	if !ok || (connID != "" && e.connID != connID) {
		return false
	}
	if !e.sender.Send(frame) {
		m.logger.Warnw("dropped push for slow connection", "uid", uid, "connId", e.connID)
	}
	return true
}

func (m *Manager) IsLocal(uid string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.conns[uid]
	return ok
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.conns)
}
