package hub

import (
	"context"
	"errors"
	"fmt"
	"pairing-hub/internal/broadcast"
	"pairing-hub/internal/event"
	"pairing-hub/internal/identity"
	"pairing-hub/internal/permission"
)

// patchRejected reports a malformed patch to the caller. Other errors are
// returned unchanged.
func (h *Hub) patchRejected(ctx context.Context, uid string, err error) error {
	var fieldErr *permission.FieldError
	if errors.As(err, &fieldErr) {
		h.serverMessage(ctx, uid, event.SeverityWarning, "Invalid change: %s", fieldErr.Error())
		return nil
	}
	return err
}

func (h *Hub) notPaired(ctx context.Context, uid string, target string) {
	h.serverMessage(ctx, uid, event.SeverityWarning, "You are not paired with %s", target)
}

// permissionChanged tells the owner of the row and, while the pair is
// bidirectional, the other side.
func (h *Hub) permissionChanged(ctx context.Context, owner string, other string, bidirectional bool, change event.PermissionChange) error {
	user, err := h.userData(ctx, owner)
	if err != nil {
		return err
	}
	change.User = user

	targets := []string{owner}
	if bidirectional {
		targets = append(targets, other)
	}
	h.pusher.SendToUsers(ctx, targets, event.PairPermissionChanged, change)
	return nil
}

// UpdateOwnPairPermission changes what target may do to the caller.
func (h *Hub) UpdateOwnPairPermission(ctx context.Context, caller identity.Identity, target string, patch permission.Patch) error {
	perms, err := h.repo.GetPairPermissions(ctx, caller.UID, target)
	if err != nil {
		return fmt.Errorf("failed to get pair permissions: %w", err)
	}
	if perms == nil {
		h.notPaired(ctx, caller.UID, target)
		return nil
	}

	if patch.Field == "IsPaused" && permission.HardcoreActive(perms) {
		h.serverMessage(ctx, caller.UID, event.SeverityWarning, "Cannot pause %s while a hardcore state is active", target)
		return nil
	}
	if err := permission.ApplyToPermissions(perms, patch); err != nil {
		return h.patchRejected(ctx, caller.UID, err)
	}
	if err := h.repo.SavePairPermissions(ctx, perms); err != nil {
		return fmt.Errorf("failed to save pair permissions: %w", err)
	}

	bidirectional, err := h.isBidirectional(ctx, caller.UID, target)
	if err != nil {
		return err
	}
	return h.permissionChanged(ctx, caller.UID, target, bidirectional, event.PermissionChange{
		Field: patch.Field, Permissions: perms, Enactor: caller.UID,
	})
}

// UpdateOtherPairPermission changes what the caller may do to target, as far
// as target's access row allows.
func (h *Hub) UpdateOtherPairPermission(ctx context.Context, caller identity.Identity, target string, patch permission.Patch) error {
	bidirectional, err := h.isBidirectional(ctx, caller.UID, target)
	if err != nil {
		return err
	}
	if !bidirectional {
		h.notPaired(ctx, caller.UID, target)
		return nil
	}

	perms, err := h.repo.GetPairPermissions(ctx, target, caller.UID)
	if err != nil {
		return fmt.Errorf("failed to get pair permissions: %w", err)
	}
	access, err := h.repo.GetPairAccess(ctx, target, caller.UID)
	if err != nil {
		return fmt.Errorf("failed to get pair access: %w", err)
	}
	if perms == nil || access == nil {
		h.notPaired(ctx, caller.UID, target)
		return nil
	}
	if !permission.CanEditRemote(access, patch.Field) {
		return refuse("No permission to change %s!", patch.Field)
	}

	if err := permission.ApplyToPermissions(perms, patch); err != nil {
		return h.patchRejected(ctx, caller.UID, err)
	}
	if err := h.repo.SavePairPermissions(ctx, perms); err != nil {
		return fmt.Errorf("failed to save pair permissions: %w", err)
	}
	return h.permissionChanged(ctx, target, caller.UID, true, event.PermissionChange{
		Field: patch.Field, Permissions: perms, Enactor: caller.UID,
	})
}

// UpdatePairAccess changes which of the caller's settings target may edit.
func (h *Hub) UpdatePairAccess(ctx context.Context, caller identity.Identity, target string, patch permission.Patch) error {
	access, err := h.repo.GetPairAccess(ctx, caller.UID, target)
	if err != nil {
		return fmt.Errorf("failed to get pair access: %w", err)
	}
	if access == nil {
		h.notPaired(ctx, caller.UID, target)
		return nil
	}

	if err := permission.ApplyToAccess(access, patch); err != nil {
		return h.patchRejected(ctx, caller.UID, err)
	}
	if err := h.repo.SavePairAccess(ctx, access); err != nil {
		return fmt.Errorf("failed to save pair access: %w", err)
	}

	bidirectional, err := h.isBidirectional(ctx, caller.UID, target)
	if err != nil {
		return err
	}
	return h.permissionChanged(ctx, caller.UID, target, bidirectional, event.PermissionChange{
		Field: patch.Field, Permissions: access, Enactor: caller.UID,
	})
}

// UpdateGlobalPermission changes a global setting of target, which is either
// the caller or one of its bidirectional pairs.
func (h *Hub) UpdateGlobalPermission(ctx context.Context, caller identity.Identity, target string, patch permission.Patch) error {
	if target == "" {
		target = caller.UID
	}
	remote := target != caller.UID

	if remote {
		bidirectional, err := h.isBidirectional(ctx, caller.UID, target)
		if err != nil {
			return err
		}
		if !bidirectional {
			h.notPaired(ctx, caller.UID, target)
			return nil
		}
		access, err := h.repo.GetPairAccess(ctx, target, caller.UID)
		if err != nil {
			return fmt.Errorf("failed to get pair access: %w", err)
		}
		if !permission.CanEditGlobalRemote(access, patch.Field) {
			return refuse("No permission to change %s!", patch.Field)
		}
	}

	global, err := h.repo.GetGlobalPermissions(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to get global permissions: %w", err)
	}
	global = globalOrDefault(global, target)

	if err := permission.ApplyToGlobal(global, patch, remote); err != nil {
		return h.patchRejected(ctx, caller.UID, err)
	}
	if err := h.repo.SaveGlobalPermissions(ctx, global); err != nil {
		return fmt.Errorf("failed to save global permissions: %w", err)
	}

	user, err := h.userData(ctx, target)
	if err != nil {
		return err
	}
	change := event.PermissionChange{User: user, Field: patch.Field, Permissions: global, Enactor: caller.UID}
	h.pusher.SendToUsers(ctx, unique(target, caller.UID), event.GlobalPermissionChanged, change)

	pairs, err := h.bidirectionalPairs(ctx, target)
	if err != nil {
		return err
	}
	if _, err := h.router.Deliver(ctx, target, keys(pairs), []string{caller.UID},
		broadcast.Static(event.GlobalPermissionChanged, change)); err != nil {
		h.logger.Warnw("failed to broadcast global permission change", "uid", target, "error", err)
	}
	return nil
}

// SetHardcoreState enacts or lifts a hardcore state on target.
func (h *Hub) SetHardcoreState(ctx context.Context, caller identity.Identity, target string, field permission.HardcoreField, enable bool) error {
	if target == "" || target == caller.UID {
		h.serverMessage(ctx, caller.UID, event.SeverityWarning, "Hardcore states can only be set by a pair")
		return nil
	}
	bidirectional, err := h.isBidirectional(ctx, caller.UID, target)
	if err != nil {
		return err
	}
	if !bidirectional {
		h.notPaired(ctx, caller.UID, target)
		return nil
	}

	grant, err := h.repo.GetPairPermissions(ctx, target, caller.UID)
	if err != nil {
		return fmt.Errorf("failed to get pair permissions: %w", err)
	}
	global, err := h.repo.GetGlobalPermissions(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to get global permissions: %w", err)
	}

	if ok, reason := permission.CanApplyHardcoreState(global, grant, field, enable, caller.UID); !ok {
		return &Error{Reason: reason}
	}
	permission.SetHardcoreState(grant, field, enable, caller.UID)
	if err := h.repo.SavePairPermissions(ctx, grant); err != nil {
		return fmt.Errorf("failed to save pair permissions: %w", err)
	}

	return h.permissionChanged(ctx, target, caller.UID, true, event.PermissionChange{
		Field: field.String(), Permissions: grant, Enactor: caller.UID,
	})
}

func unique(uids ...string) []string {
	out := make([]string, 0, len(uids))
	for _, uid := range uids {
		if uid != "" && !containsUID(out, uid) {
			out = append(out, uid)
		}
	}
	return out
}

func containsUID(uids []string, uid string) bool {
	for _, u := range uids {
		if u == uid {
			return true
		}
	}
	return false
}
