// Package restriction moves restriction slots between their applied, locked and
// unlocked states after the permission evaluator has agreed to the move.
package restriction

import (
	"pairing-hub/internal/lock"
	"pairing-hub/internal/permission"
	"pairing-hub/internal/repository/model"
	"time"
)

// ConflictError reports a request that does not fit the slot's current state.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// DeniedError reports a request the evaluator refused.
type DeniedError struct {
	Reason string
}

func (e *DeniedError) Error() string {
	return e.Reason
}

func isConflict(reason string) bool {
	switch reason {
	case permission.ReasonNothingToLock, permission.ReasonAlreadyLocked,
		permission.ReasonNothingToUnlock, permission.ReasonNothingToRemove,
		permission.ReasonSlotLocked:
		return true
	}
	return false
}

func refused(reason string) error {
	if isConflict(reason) {
		return &ConflictError{Reason: reason}
	}
	return &DeniedError{Reason: reason}
}

// Lock fastens req.Padlock on slot. Timed padlocks get their expiry from
// req.Duration, FiveMinutes always expires five minutes after now.
func Lock(slot *model.Slot, grant *model.PairPermissions, req permission.LockRequest, c permission.Category, now time.Time) error {
	if ok, reason := permission.CanLock(slot, grant, req, c); !ok {
		return refused(reason)
	}

	slot.Padlock = req.Padlock
	slot.Assigner = req.Requester
	slot.Password = ""
	slot.Timer = time.Time{}

	if req.Padlock.IsPassword() {
		slot.Password = req.Password
	}
	switch {
	case req.Padlock == lock.FiveMinutes:
		slot.Timer = now.Add(lock.FiveMinutesDuration)
	case req.Padlock.IsTimed():
		slot.Timer = now.Add(req.Duration)
	}
	return nil
}

// Unlock removes the padlock from slot. Mimic padlocks take their item with them.
func Unlock(slot *model.Slot, grant *model.PairPermissions, req permission.UnlockRequest) error {
	if ok, reason := permission.CanUnlock(slot, grant, req); !ok {
		return refused(reason)
	}

	mimic := slot.Padlock == lock.Mimic
	slot.Padlock = lock.None
	slot.Password = ""
	slot.Timer = req.Now
	slot.Assigner = ""
	if mimic {
		slot.Item = ""
	}
	return nil
}

func Apply(slot *model.Slot, grant *model.PairPermissions, item string, self bool, c permission.Category) error {
	if item == "" {
		return &ConflictError{Reason: "No item selected!"}
	}
	if ok, reason := permission.CanApply(slot, grant, self, c); !ok {
		return refused(reason)
	}
	slot.Item = item
	return nil
}

func Remove(slot *model.Slot, grant *model.PairPermissions, self bool, c permission.Category) error {
	if ok, reason := permission.CanRemove(slot, grant, self, c); !ok {
		return refused(reason)
	}
	*slot = model.Slot{}
	return nil
}
