package hub

import (
	"context"
	"fmt"
	"pairing-hub/internal/broadcast"
	"pairing-hub/internal/event"
)

// InitCaches runs when a user first connects to this process.
func (h *Hub) InitCaches(ctx context.Context, uid string) error {
	if err := h.repo.UpdateLastLogin(ctx, uid); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	pairs, err := h.loadBidirectional(ctx, uid)
	if err != nil {
		return err
	}

	h.pairsMu.Lock()
	h.pairs[uid] = pairs
	h.pairsMu.Unlock()
	return nil
}

func (h *Hub) DisposeCaches(uid string) {
	h.pairsMu.Lock()
	delete(h.pairs, uid)
	h.pairsMu.Unlock()
}

func (h *Hub) NotifyOnline(ctx context.Context, uid string, session string) error {
	pairs, err := h.bidirectionalPairs(ctx, uid)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return nil
	}

	user, err := h.userData(ctx, uid)
	if err != nil {
		return err
	}
	_, err = h.router.Deliver(ctx, uid, keys(pairs), nil,
		broadcast.Static(event.UserWentOnline, event.OnlineUser{User: user, Session: session}))
	return err
}

// NotifyOffline reads pairs from the store since caches are already gone.
func (h *Hub) NotifyOffline(ctx context.Context, uid string) error {
	pairs, err := h.loadBidirectional(ctx, uid)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return nil
	}

	user, err := h.userData(ctx, uid)
	if err != nil {
		return err
	}
	_, err = h.router.Deliver(ctx, uid, keys(pairs), nil,
		broadcast.Static(event.UserWentOffline, event.PairRef{User: user}))
	return err
}
