package hub

import (
	"context"
	"errors"
	"fmt"
	"pairing-hub/internal/broadcast"
	"pairing-hub/internal/event"
	"pairing-hub/internal/identity"
	"pairing-hub/internal/lock"
	"pairing-hub/internal/permission"
	"pairing-hub/internal/repository/model"
	"pairing-hub/internal/restriction"
	"time"
)

type SlotKind string

const (
	KindGag         SlotKind = "gag"
	KindRestriction SlotKind = "restriction"
	KindRestraint   SlotKind = "restraint"
)

// SlotRef addresses one slot of a user's active state.
type SlotRef struct {
	Target string
	Kind   SlotKind
	Index  int
}

type SlotLock struct {
	Padlock  lock.Padlock
	Password string
	Duration time.Duration
}

func (r SlotRef) category() (permission.Category, bool) {
	switch r.Kind {
	case KindGag:
		return permission.Gags, true
	case KindRestriction:
		return permission.Restrictions, true
	case KindRestraint:
		return permission.RestraintSets, true
	}
	return 0, false
}

func (r SlotRef) slot(state *model.ActiveState) *model.Slot {
	switch r.Kind {
	case KindGag:
		if r.Index >= 0 && r.Index < len(state.Gags) {
			return &state.Gags[r.Index]
		}
	case KindRestriction:
		if r.Index >= 0 && r.Index < len(state.Restrictions) {
			return &state.Restrictions[r.Index]
		}
	case KindRestraint:
		if r.Index == 0 {
			return &state.Restraint
		}
	}
	return nil
}

// slotChange is one mutation attempted on a resolved slot.
type slotChange func(slot *model.Slot, grant *model.PairPermissions, self bool, c permission.Category) error

func (h *Hub) ApplySlot(ctx context.Context, caller identity.Identity, ref SlotRef, item string) error {
	return h.changeSlot(ctx, caller, ref, func(slot *model.Slot, grant *model.PairPermissions, self bool, c permission.Category) error {
		return restriction.Apply(slot, grant, item, self, c)
	})
}

func (h *Hub) RemoveSlot(ctx context.Context, caller identity.Identity, ref SlotRef) error {
	return h.changeSlot(ctx, caller, ref, restriction.Remove)
}

func (h *Hub) LockSlot(ctx context.Context, caller identity.Identity, ref SlotRef, req SlotLock) error {
	return h.changeSlot(ctx, caller, ref, func(slot *model.Slot, grant *model.PairPermissions, self bool, c permission.Category) error {
		return restriction.Lock(slot, grant, permission.LockRequest{
			Padlock:   req.Padlock,
			Password:  req.Password,
			Duration:  req.Duration,
			Requester: caller.UID,
			Self:      self,
		}, c, h.now())
	})
}

func (h *Hub) UnlockSlot(ctx context.Context, caller identity.Identity, ref SlotRef, password string) error {
	return h.changeSlot(ctx, caller, ref, func(slot *model.Slot, grant *model.PairPermissions, _ bool, _ permission.Category) error {
		return restriction.Unlock(slot, grant, permission.UnlockRequest{
			Password:  password,
			Requester: caller.UID,
			Now:       h.now(),
		})
	})
}

func (h *Hub) changeSlot(ctx context.Context, caller identity.Identity, ref SlotRef, change slotChange) error {
	target := ref.Target
	if target == "" {
		target = caller.UID
	}
	self := target == caller.UID

	c, ok := ref.category()
	if !ok {
		h.serverMessage(ctx, caller.UID, event.SeverityWarning, "Unknown slot kind %q", ref.Kind)
		return nil
	}

	if !self {
		user, err := h.repo.GetUser(ctx, target)
		if err != nil {
			return fmt.Errorf("failed to get user: %w", err)
		}
		if user == nil {
			h.serverMessage(ctx, caller.UID, event.SeverityWarning, "User %s does not exist", target)
			return nil
		}
	}

	state, err := h.repo.GetActiveState(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to get active state: %w", err)
	}
	if state == nil {
		state = &model.ActiveState{UserUID: target}
	}
	slot := ref.slot(state)
	if slot == nil {
		h.serverMessage(ctx, caller.UID, event.SeverityWarning, "There is no %s slot %d", ref.Kind, ref.Index)
		return nil
	}

	var grant *model.PairPermissions
	if !self {
		grant, err = h.repo.GetPairPermissions(ctx, target, caller.UID)
		if err != nil {
			return fmt.Errorf("failed to get pair permissions: %w", err)
		}
		// A paused pair is treated as no pair at all.
		if grant != nil && grant.IsPaused {
			grant = nil
		}
	}

	if err := change(slot, grant, self, c); err != nil {
		var conflict *restriction.ConflictError
		if errors.As(err, &conflict) {
			h.serverMessage(ctx, caller.UID, event.SeverityWarning, "%s", conflict.Reason)
			return nil
		}
		var denied *restriction.DeniedError
		if errors.As(err, &denied) {
			return &Error{Reason: denied.Reason}
		}
		return err
	}

	if err := h.repo.SaveActiveState(ctx, state); err != nil {
		return fmt.Errorf("failed to save active state: %w", err)
	}

	user, err := h.userData(ctx, target)
	if err != nil {
		return err
	}
	stateChange := event.StateChange{User: user, State: state, Enactor: caller.UID}
	h.pusher.SendToUsers(ctx, unique(target, caller.UID), event.ActiveStateChanged, stateChange)

	pairs, err := h.bidirectionalPairs(ctx, target)
	if err != nil {
		return err
	}
	if _, err := h.router.Deliver(ctx, target, keys(pairs), []string{caller.UID},
		broadcast.Static(event.ActiveStateChanged, stateChange)); err != nil {
		h.logger.Warnw("failed to broadcast active state change", "uid", target, "error", err)
	}
	return nil
}
