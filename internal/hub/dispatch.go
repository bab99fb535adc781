package hub

import (
	"context"
	"encoding/json"
	"errors"
	"pairing-hub/internal/event"
	"pairing-hub/internal/identity"
	"pairing-hub/internal/lock"
	"pairing-hub/internal/permission"
	"pairing-hub/internal/utils"

	"github.com/tidwall/gjson"
)

type handler func(h *Hub, ctx context.Context, caller identity.Identity, payload gjson.Result) (any, error)

var handlers = map[string]handler{
	"AddPair": func(h *Hub, ctx context.Context, caller identity.Identity, p gjson.Result) (any, error) {
		return nil, h.AddPair(ctx, caller, p.Get("user").String())
	},
	"RemovePair": func(h *Hub, ctx context.Context, caller identity.Identity, p gjson.Result) (any, error) {
		return nil, h.RemovePair(ctx, caller, p.Get("user").String())
	},
	"GetPairs": func(h *Hub, ctx context.Context, caller identity.Identity, _ gjson.Result) (any, error) {
		return h.GetPairs(ctx, caller)
	},
	"GetOnlinePairs": func(h *Hub, ctx context.Context, caller identity.Identity, _ gjson.Result) (any, error) {
		return h.GetOnlinePairs(ctx, caller)
	},
	"PushCharacterData": dispatchCharacterData,

	"SetProfile": dispatchSetProfile,
	"GetProfile": func(h *Hub, ctx context.Context, caller identity.Identity, p gjson.Result) (any, error) {
		return h.GetProfile(ctx, caller, p.Get("user").String())
	},
	"GetOnlineUserCount": func(h *Hub, ctx context.Context, _ identity.Identity, _ gjson.Result) (any, error) {
		return h.GetOnlineUserCount(ctx)
	},

	"UpdateOwnPairPermission":   patchHandler((*Hub).UpdateOwnPairPermission),
	"UpdateOtherPairPermission": patchHandler((*Hub).UpdateOtherPairPermission),
	"UpdatePairAccess":          patchHandler((*Hub).UpdatePairAccess),
	"UpdateGlobalPermission":    patchHandler((*Hub).UpdateGlobalPermission),
	"SetHardcoreState":          dispatchHardcore,

	"ApplySlot": func(h *Hub, ctx context.Context, caller identity.Identity, p gjson.Result) (any, error) {
		return nil, h.ApplySlot(ctx, caller, slotRefOf(p), p.Get("item").String())
	},
	"RemoveSlot": func(h *Hub, ctx context.Context, caller identity.Identity, p gjson.Result) (any, error) {
		return nil, h.RemoveSlot(ctx, caller, slotRefOf(p))
	},
	"LockSlot": dispatchLock,
	"UnlockSlot": func(h *Hub, ctx context.Context, caller identity.Identity, p gjson.Result) (any, error) {
		return nil, h.UnlockSlot(ctx, caller, slotRefOf(p), p.Get("password").String())
	},
}

// Dispatch runs method for caller with a JSON payload. Unknown methods are
// refused with an *Error.
func (h *Hub) Dispatch(ctx context.Context, caller identity.Identity, method string, payload []byte) (any, error) {
	handle, ok := handlers[method]
	if !ok {
		return nil, refuse("Unknown method %s", method)
	}
	if len(payload) > 0 && !gjson.ValidBytes(payload) {
		h.serverMessage(ctx, caller.UID, event.SeverityWarning, "Malformed request for %s", method)
		return nil, nil
	}
	return handle(h, ctx, caller, gjson.ParseBytes(payload))
}

func patchHandler(apply func(*Hub, context.Context, identity.Identity, string, permission.Patch) error) handler {
	return func(h *Hub, ctx context.Context, caller identity.Identity, p gjson.Result) (any, error) {
		patch, err := permission.ParsePatch(p.Raw)
		if err != nil {
			return nil, h.patchRejected(ctx, caller.UID, err)
		}
		return nil, apply(h, ctx, caller, p.Get("user").String(), patch)
	}
}

func dispatchCharacterData(h *Hub, ctx context.Context, caller identity.Identity, p gjson.Result) (any, error) {
	data := p.Get("data")
	if !data.Exists() {
		h.serverMessage(ctx, caller.UID, event.SeverityWarning, "Character data is missing")
		return nil, nil
	}

	var recipients []string
	for _, r := range p.Get("recipients").Array() {
		recipients = append(recipients, r.String())
	}
	return h.PushCharacterData(ctx, caller, recipients, json.RawMessage(data.Raw))
}

func dispatchSetProfile(h *Hub, ctx context.Context, caller identity.Identity, p gjson.Result) (any, error) {
	update := ProfileUpdate{
		User:        p.Get("user").String(),
		Description: p.Get("description").String(),
	}
	if image := p.Get("image"); image.Exists() {
		update.Image = utils.PointerOf(image.String())
	}
	return nil, h.SetProfile(ctx, caller, update)
}

func dispatchHardcore(h *Hub, ctx context.Context, caller identity.Identity, p gjson.Result) (any, error) {
	field, err := permission.ParseHardcoreField(p.Get("field").String())
	if err != nil {
		return nil, h.patchRejected(ctx, caller.UID, err)
	}
	return nil, h.SetHardcoreState(ctx, caller, p.Get("user").String(), field, p.Get("enable").Bool())
}

func dispatchLock(h *Hub, ctx context.Context, caller identity.Identity, p gjson.Result) (any, error) {
	padlock, err := lock.ParsePadlock(p.Get("padlock").String())
	if err != nil {
		h.serverMessage(ctx, caller.UID, event.SeverityWarning, "%s", permission.ReasonNoPadlock)
		return nil, nil
	}
	duration, err := permission.DurationOf("duration", p.Get("duration"))
	if err != nil {
		return nil, h.patchRejected(ctx, caller.UID, err)
	}
	return nil, h.LockSlot(ctx, caller, slotRefOf(p), SlotLock{
		Padlock:  padlock,
		Password: p.Get("password").String(),
		Duration: duration,
	})
}

func slotRefOf(p gjson.Result) SlotRef {
	return SlotRef{
		Target: p.Get("user").String(),
		Kind:   SlotKind(p.Get("kind").String()),
		Index:  int(p.Get("index").Int()),
	}
}

// IsRefusal reports whether err is meant to be shown to the caller verbatim.
func IsRefusal(err error) (string, bool) {
	var hubErr *Error
	if errors.As(err, &hubErr) {
		return hubErr.Reason, true
	}
	return "", false
}
