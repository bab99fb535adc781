package permission

import (
	"fmt"
	"pairing-hub/internal/lock"
	"pairing-hub/internal/repository/model"
	"time"
)

// Category is the kind of restriction slot an action targets.
type Category int

const (
	Gags Category = iota
	Restrictions
	RestraintSets
)

func (c Category) String() string {
	switch c {
	case Gags:
		return "Gags"
	case Restrictions:
		return "Restrictions"
	case RestraintSets:
		return "Restraint Sets"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

const (
	ReasonNothingToLock   = "Nothing is applied to lock!"
	ReasonAlreadyLocked   = "Already locked!"
	ReasonNothingToUnlock = "Nothing to unlock!"
	ReasonNothingToRemove = "Nothing to remove!"
	ReasonSlotLocked      = "The slot is locked!"
	ReasonNoPadlock       = "No padlock selected!"
	ReasonMimicAutomation = "Mimic padlocks are only applied by automation!"
	ReasonBadCombination  = "Combination must be exactly 4 digits!"
	ReasonBadPassword     = "Password must be between 1 and 20 characters!"
	ReasonBadTimer        = "Timer must be positive!"
	ReasonTimerTooLong    = "Timer exceeds the maximum lock time you were granted!"
	ReasonWrongPassword   = "Password does not match!"
	ReasonOwnerLocks      = "Owner Locks not allowed!"
	ReasonDevotionalLocks = "Devotional Locks not allowed!"
	ReasonNotAssigner     = "Only the assigner may unlock a Devotional Padlock!"
)

// LockRequest describes an attempt to fasten a padlock on a slot.
type LockRequest struct {
	Padlock  lock.Padlock
	Password string
	Duration time.Duration

	Requester string
	// Self is set when the requester owns the slot.
	Self bool
}

type UnlockRequest struct {
	Password  string
	Requester string
	Now       time.Time
}

type categoryRules struct {
	apply, lock, remove bool
	maxTime             time.Duration
}

func rulesFor(grant *model.PairPermissions, c Category) categoryRules {
	if grant == nil {
		return categoryRules{}
	}
	switch c {
	case Gags:
		return categoryRules{grant.ApplyGags, grant.LockGags, grant.RemoveGags, grant.MaxGagTime}
	case Restrictions:
		return categoryRules{grant.ApplyRestrictions, grant.LockRestrictions, grant.RemoveRestrictions, grant.MaxRestrictionTime}
	case RestraintSets:
		return categoryRules{grant.ApplyRestraintSets, grant.LockRestraintSets, grant.RemoveRestraintSets, grant.MaxRestraintTime}
	}
	panic(fmt.Sprintf("permission: unhandled category %v", c))
}

// CanLock decides whether req may fasten its padlock on slot. grant is the slot
// owner's grant toward the requester and may be nil when there is none.
func CanLock(slot *model.Slot, grant *model.PairPermissions, req LockRequest, c Category) (bool, string) {
	if slot.IsEmpty() {
		return false, ReasonNothingToLock
	}
	if slot.IsLocked() {
		return false, ReasonAlreadyLocked
	}

	rules := rulesFor(grant, c)
	if !req.Self && !rules.lock {
		return false, fmt.Sprintf("No permission to lock %s!", c)
	}

	switch p := req.Padlock; {
	case p == lock.None:
		return false, ReasonNoPadlock
	case p == lock.Mimic:
		if !req.Self {
			return false, ReasonMimicAutomation
		}
		return true, ""
	case p == lock.Metal, p == lock.FiveMinutes:
		return true, ""
	case p == lock.Combination:
		if !isCombination(req.Password) {
			return false, ReasonBadCombination
		}
		return true, ""
	case p == lock.Password:
		if !isPassword(req.Password) {
			return false, ReasonBadPassword
		}
		return true, ""
	case p == lock.TimerPassword:
		if !isPassword(req.Password) {
			return false, ReasonBadPassword
		}
		return checkTimer(req, grant, rules)
	case p.IsOwner():
		if grant == nil || !grant.OwnerLocks {
			return false, ReasonOwnerLocks
		}
		if p == lock.OwnerTimer {
			return checkTimer(req, grant, rules)
		}
		return true, ""
	case p.IsDevotional():
		if grant == nil || !grant.DevotionalLocks {
			return false, ReasonDevotionalLocks
		}
		if p == lock.DevotionalTimer {
			return checkTimer(req, grant, rules)
		}
		return true, ""
	default:
		panic(fmt.Sprintf("permission: unhandled padlock %v", p))
	}
}

func checkTimer(req LockRequest, grant *model.PairPermissions, rules categoryRules) (bool, string) {
	if req.Duration <= 0 {
		return false, ReasonBadTimer
	}
	if req.Self || grant.PermanentLocks {
		return true, ""
	}
	if req.Duration > rules.maxTime {
		return false, ReasonTimerTooLong
	}
	if grant.MaxLockTime > 0 && req.Duration > grant.MaxLockTime {
		return false, ReasonTimerTooLong
	}
	return true, ""
}

// CanUnlock decides whether req may remove the padlock on slot.
func CanUnlock(slot *model.Slot, grant *model.PairPermissions, req UnlockRequest) (bool, string) {
	p := slot.Padlock
	if p == lock.None {
		return false, ReasonNothingToUnlock
	}
	// An elapsed timer releases any timed padlock.
	if p.IsTimed() && !slot.Timer.IsZero() && !req.Now.Before(slot.Timer) {
		return true, ""
	}

	switch {
	case p.IsTrivial():
		return true, ""
	case p.IsPassword():
		if req.Password != slot.Password {
			return false, ReasonWrongPassword
		}
		return true, ""
	case p.IsOwner():
		if grant == nil || !grant.OwnerLocks {
			return false, ReasonOwnerLocks
		}
		return true, ""
	case p.IsDevotional():
		if req.Requester != slot.Assigner {
			return false, ReasonNotAssigner
		}
		return true, ""
	default:
		panic(fmt.Sprintf("permission: unhandled padlock %v", p))
	}
}

// CanApply decides whether an item may be placed in the slot.
func CanApply(slot *model.Slot, grant *model.PairPermissions, self bool, c Category) (bool, string) {
	if slot.IsLocked() {
		return false, ReasonSlotLocked
	}
	if !self && !rulesFor(grant, c).apply {
		return false, fmt.Sprintf("No permission to apply %s!", c)
	}
	return true, ""
}

// CanRemove decides whether the occupying item may be taken out of the slot.
func CanRemove(slot *model.Slot, grant *model.PairPermissions, self bool, c Category) (bool, string) {
	if slot.IsEmpty() {
		return false, ReasonNothingToRemove
	}
	if slot.IsLocked() {
		return false, ReasonSlotLocked
	}
	if !self && !rulesFor(grant, c).remove {
		return false, fmt.Sprintf("No permission to remove %s!", c)
	}
	return true, ""
}

func isCombination(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isPassword(s string) bool {
	n := len([]rune(s))
	return n >= 1 && n <= 20
}
