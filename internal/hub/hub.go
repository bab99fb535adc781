package hub

import (
	"context"
	"fmt"
	"pairing-hub/internal/broadcast"
	"pairing-hub/internal/config"
	"pairing-hub/internal/event"
	"pairing-hub/internal/presence"
	"pairing-hub/internal/push"
	"pairing-hub/internal/repository"
	"pairing-hub/internal/repository/model"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Error is an authorization refusal. Reason is shown to the caller as is.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

func refuse(format string, args ...any) error {
	return &Error{Reason: fmt.Sprintf(format, args...)}
}

// Hub implements the client-callable operations. Callers are already
// authenticated; every operation acts on behalf of the given identity.
type Hub struct {
	logger *zap.SugaredLogger
	cfg    config.HubConfig

	repo   repository.Repository
	dir    presence.Directory
	pusher push.Pusher
	router *broadcast.Router

	now func() time.Time

	// pairs caches the bidirectional pair uids of users connected here.
	pairsMu sync.Mutex
	pairs   map[string]map[string]struct{}
}

func New(logger *zap.SugaredLogger, cfg config.HubConfig, repo repository.Repository, dir presence.Directory,
	pusher push.Pusher, router *broadcast.Router) *Hub {

	return &Hub{
		logger: logger,
		cfg:    cfg,
		repo:   repo,
		dir:    dir,
		pusher: pusher,
		router: router,
		now:    time.Now,
		pairs:  make(map[string]map[string]struct{}),
	}
}

func (h *Hub) serverMessage(ctx context.Context, uid string, severity event.Severity, format string, args ...any) {
	h.pusher.SendToUser(ctx, uid, event.ReceiveServerMessage, event.ServerMessage{
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (h *Hub) userData(ctx context.Context, uid string) (event.UserData, error) {
	user, err := h.repo.GetUser(ctx, uid)
	if err != nil {
		return event.UserData{}, fmt.Errorf("failed to get user %s: %w", uid, err)
	}
	if user == nil {
		return event.UserData{UID: uid}, nil
	}
	return event.UserDataOf(user), nil
}

func (h *Hub) isBidirectional(ctx context.Context, uid string, other string) (bool, error) {
	forward, err := h.repo.GetPair(ctx, uid, other)
	if err != nil {
		return false, fmt.Errorf("failed to get pair: %w", err)
	}
	if forward == nil {
		return false, nil
	}
	reverse, err := h.repo.GetPair(ctx, other, uid)
	if err != nil {
		return false, fmt.Errorf("failed to get pair: %w", err)
	}
	return reverse != nil, nil
}

// loadBidirectional reads the pair uids of uid that have added uid back.
func (h *Hub) loadBidirectional(ctx context.Context, uid string) (map[string]struct{}, error) {
	own, err := h.repo.ListPairs(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list pairs: %w", err)
	}
	if len(own) == 0 {
		return map[string]struct{}{}, nil
	}
	by, err := h.repo.ListPairedBy(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to list paired by: %w", err)
	}

	back := make(map[string]struct{}, len(by))
	for _, p := range by {
		back[p.UserUID] = struct{}{}
	}
	result := make(map[string]struct{}, len(own))
	for _, p := range own {
		if _, ok := back[p.OtherUserUID]; ok {
			result[p.OtherUserUID] = struct{}{}
		}
	}
	return result, nil
}

// bidirectionalPairs serves from the cache when uid is connected here and
// loads from the store otherwise.
func (h *Hub) bidirectionalPairs(ctx context.Context, uid string) (map[string]struct{}, error) {
	h.pairsMu.Lock()
	cached, ok := h.pairs[uid]
	h.pairsMu.Unlock()
	if ok {
		return cached, nil
	}
	return h.loadBidirectional(ctx, uid)
}

// invalidatePairs reloads the cache entries of uids connected here. An entry
// that cannot be reloaded is dropped and read through the store from then on.
func (h *Hub) invalidatePairs(ctx context.Context, uids ...string) {
	for _, uid := range uids {
		h.pairsMu.Lock()
		_, cached := h.pairs[uid]
		h.pairsMu.Unlock()
		if !cached {
			continue
		}

		pairs, err := h.loadBidirectional(ctx, uid)
		h.pairsMu.Lock()
		if _, ok := h.pairs[uid]; ok {
			if err != nil {
				delete(h.pairs, uid)
			} else {
				h.pairs[uid] = pairs
			}
		}
		h.pairsMu.Unlock()
		if err != nil {
			h.logger.Warnw("failed to refresh pair cache", "uid", uid, "error", err)
		}
	}
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func pairStatus(bidirectional bool) event.PairStatus {
	if bidirectional {
		return event.Bidirectional
	}
	return event.OneSided
}

func globalOrDefault(g *model.GlobalPermissions, uid string) *model.GlobalPermissions {
	if g == nil {
		return model.DefaultGlobalPermissions(uid)
	}
	return g
}
