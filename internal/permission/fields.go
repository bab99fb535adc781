package permission

import (
	"fmt"
	"math"
	"pairing-hub/internal/repository/model"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

type Kind int

const (
	KindBool Kind = iota
	KindNumber
	KindString
)

// Value is an untyped JSON scalar. The target field decides how it is read.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
}

func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }
func NumberValue(n float64) Value { return Value{kind: KindNumber, n: n} }
func StringValue(s string) Value { return Value{kind: KindString, s: s} }
func DurationValue(d time.Duration) Value {
	return NumberValue(d.Seconds())
}

func (v Value) Kind() Kind { return v.kind }

func valueFrom(r gjson.Result) (Value, bool) {
	switch r.Type {
	case gjson.True, gjson.False:
		return BoolValue(r.Bool()), true
	case gjson.Number:
		return NumberValue(r.Num), true
	case gjson.String:
		return StringValue(r.Str), true
	}
	return Value{}, false
}

func (v Value) asBool(field string) (bool, error) {
	if v.kind != KindBool {
		return false, &FieldError{Field: field, Reason: "expected a boolean"}
	}
	return v.b, nil
}

// asDuration accepts seconds as a number or a Go duration string such as "1h30m".
func (v Value) asDuration(field string) (time.Duration, error) {
	switch v.kind {
	case KindNumber:
		ns := v.n * float64(time.Second)
		switch {
		case math.IsNaN(ns):
			return 0, &FieldError{Field: field, Reason: "invalid duration"}
		case ns < 0:
			return 0, &FieldError{Field: field, Reason: "duration must not be negative"}
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
		case ns >= float64(math.MaxInt64):
			return 0, &FieldError{Field: field, Reason: "duration too large"}
		}
		return time.Duration(ns), nil
	case KindString:
		d, err := time.ParseDuration(v.s)
		if err != nil || d < 0 {
			return 0, &FieldError{Field: field, Reason: "invalid duration"}
		}
		return d, nil
	}
	return 0, &FieldError{Field: field, Reason: "expected a duration"}
}

// DurationOf reads a duration the way patches do. A missing value is zero.
func DurationOf(field string, r gjson.Result) (time.Duration, error) {
	if !r.Exists() || r.Type == gjson.Null {
		return 0, nil
	}
	v, ok := valueFrom(r)
	if !ok {
		return 0, &FieldError{Field: field, Reason: "expected a duration"}
	}
	return v.asDuration(field)
}

func (v Value) asString(field string) (string, error) {
	if v.kind != KindString {
		return "", &FieldError{Field: field, Reason: "expected a string"}
	}
	return v.s, nil
}

func (v Value) asChar(field string) (string, error) {
	s, err := v.asString(field)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(s) != 1 {
		return "", &FieldError{Field: field, Reason: "expected a single character"}
	}
	return s, nil
}

// Patch is a single field assignment sent by a client.
type Patch struct {
	Field string
	Value Value
}

// ParsePatch reads {"field": ..., "value": ...} from a JSON payload.
func ParsePatch(payload string) (Patch, error) {
	field := gjson.Get(payload, "field")
	if field.Type != gjson.String || field.Str == "" {
		return Patch{}, &FieldError{Field: "field", Reason: "missing field name"}
	}
	value, ok := valueFrom(gjson.Get(payload, "value"))
	if !ok {
		return Patch{}, &FieldError{Field: field.Str, Reason: "missing or non-scalar value"}
	}
	return Patch{Field: field.Str, Value: value}, nil
}

func unknownField(field string) error {
	return &FieldError{Field: field, Reason: "unknown field"}
}

func permissionBool(p *model.PairPermissions, field string) *bool {
	switch field {
	case "IsPaused":
		return &p.IsPaused
	case "PermanentLocks":
		return &p.PermanentLocks
	case "OwnerLocks":
		return &p.OwnerLocks
	case "DevotionalLocks":
		return &p.DevotionalLocks
	case "ApplyGags":
		return &p.ApplyGags
	case "LockGags":
		return &p.LockGags
	case "UnlockGags":
		return &p.UnlockGags
	case "RemoveGags":
		return &p.RemoveGags
	case "ApplyRestrictions":
		return &p.ApplyRestrictions
	case "LockRestrictions":
		return &p.LockRestrictions
	case "UnlockRestrictions":
		return &p.UnlockRestrictions
	case "RemoveRestrictions":
		return &p.RemoveRestrictions
	case "ApplyRestraintSets":
		return &p.ApplyRestraintSets
	case "LockRestraintSets":
		return &p.LockRestraintSets
	case "UnlockRestraintSets":
		return &p.UnlockRestraintSets
	case "RemoveRestraintSets":
		return &p.RemoveRestraintSets
	case "AllowSitRequests":
		return &p.AllowSitRequests
	case "AllowMotionRequests":
		return &p.AllowMotionRequests
	case "AllowAllRequests":
		return &p.AllowAllRequests
	case "AllowPositive":
		return &p.AllowPositive
	case "AllowNegative":
		return &p.AllowNegative
	case "AllowSpecial":
		return &p.AllowSpecial
	case "PairCanApplyOwn":
		return &p.PairCanApplyOwn
	case "PairCanApplyYours":
		return &p.PairCanApplyYours
	case "AllowPermanentMoodles":
		return &p.AllowPermanentMoodles
	case "AllowRemovingMoodles":
		return &p.AllowRemovingMoodles
	case "CanToggleToyState":
		return &p.CanToggleToyState
	case "CanUseVibeRemote":
		return &p.CanUseVibeRemote
	case "CanToggleAlarms":
		return &p.CanToggleAlarms
	case "CanExecutePatterns":
		return &p.CanExecutePatterns
	case "CanToggleTriggers":
		return &p.CanToggleTriggers
	case "AllowForcedFollow":
		return &p.AllowForcedFollow
	case "AllowForcedSit":
		return &p.AllowForcedSit
	case "AllowForcedStay":
		return &p.AllowForcedStay
	case "AllowBlindfold":
		return &p.AllowBlindfold
	}
	return nil
}

func permissionDuration(p *model.PairPermissions, field string) *time.Duration {
	switch field {
	case "MaxLockTime":
		return &p.MaxLockTime
	case "MaxGagTime":
		return &p.MaxGagTime
	case "MaxRestrictionTime":
		return &p.MaxRestrictionTime
	case "MaxRestraintTime":
		return &p.MaxRestraintTime
	case "MaxMoodleTime":
		return &p.MaxMoodleTime
	}
	return nil
}

// ApplyToPermissions assigns patch to the grant row. Hardcore activation fields
// are only changed through SetHardcoreState.
func ApplyToPermissions(p *model.PairPermissions, patch Patch) error {
	if _, err := ParseHardcoreField(patch.Field); err == nil {
		return &FieldError{Field: patch.Field, Reason: "hardcore states cannot be patched"}
	}

	if ptr := permissionBool(p, patch.Field); ptr != nil {
		v, err := patch.Value.asBool(patch.Field)
		if err != nil {
			return err
		}
		*ptr = v
		return nil
	}
	if ptr := permissionDuration(p, patch.Field); ptr != nil {
		v, err := patch.Value.asDuration(patch.Field)
		if err != nil {
			return err
		}
		*ptr = v
		return nil
	}

	switch patch.Field {
	case "TriggerPhrase":
		v, err := patch.Value.asString(patch.Field)
		if err != nil {
			return err
		}
		p.TriggerPhrase = v
		return nil
	case "StartChar", "EndChar":
		v, err := patch.Value.asChar(patch.Field)
		if err != nil {
			return err
		}
		if patch.Field == "StartChar" {
			p.StartChar = v
		} else {
			p.EndChar = v
		}
		return nil
	}
	return unknownField(patch.Field)
}

func accessBool(a *model.PairAccess, field string) *bool {
	switch field {
	case "ChatGarblerActiveAllowed":
		return &a.ChatGarblerActiveAllowed
	case "ChatGarblerLockedAllowed":
		return &a.ChatGarblerLockedAllowed
	case "WardrobeEnabledAllowed":
		return &a.WardrobeEnabledAllowed
	case "PuppeteerEnabledAllowed":
		return &a.PuppeteerEnabledAllowed
	case "MoodlesEnabledAllowed":
		return &a.MoodlesEnabledAllowed
	case "ToyboxEnabledAllowed":
		return &a.ToyboxEnabledAllowed
	case "IsPausedAllowed":
		return &a.IsPausedAllowed
	case "PermanentLocksAllowed":
		return &a.PermanentLocksAllowed
	case "MaxLockTimeAllowed":
		return &a.MaxLockTimeAllowed
	case "OwnerLocksAllowed":
		return &a.OwnerLocksAllowed
	case "DevotionalLocksAllowed":
		return &a.DevotionalLocksAllowed
	case "ApplyGagsAllowed":
		return &a.ApplyGagsAllowed
	case "LockGagsAllowed":
		return &a.LockGagsAllowed
	case "MaxGagTimeAllowed":
		return &a.MaxGagTimeAllowed
	case "UnlockGagsAllowed":
		return &a.UnlockGagsAllowed
	case "RemoveGagsAllowed":
		return &a.RemoveGagsAllowed
	case "ApplyRestrictionsAllowed":
		return &a.ApplyRestrictionsAllowed
	case "LockRestrictionsAllowed":
		return &a.LockRestrictionsAllowed
	case "MaxRestrictionTimeAllowed":
		return &a.MaxRestrictionTimeAllowed
	case "UnlockRestrictionsAllowed":
		return &a.UnlockRestrictionsAllowed
	case "RemoveRestrictionsAllowed":
		return &a.RemoveRestrictionsAllowed
	case "ApplyRestraintSetsAllowed":
		return &a.ApplyRestraintSetsAllowed
	case "LockRestraintSetsAllowed":
		return &a.LockRestraintSetsAllowed
	case "MaxRestraintTimeAllowed":
		return &a.MaxRestraintTimeAllowed
	case "UnlockRestraintSetsAllowed":
		return &a.UnlockRestraintSetsAllowed
	case "RemoveRestraintSetsAllowed":
		return &a.RemoveRestraintSetsAllowed
	case "TriggerPhraseAllowed":
		return &a.TriggerPhraseAllowed
	case "AllowSitRequestsAllowed":
		return &a.AllowSitRequestsAllowed
	case "AllowMotionRequestsAllowed":
		return &a.AllowMotionRequestsAllowed
	case "AllowAllRequestsAllowed":
		return &a.AllowAllRequestsAllowed
	case "AllowPositiveAllowed":
		return &a.AllowPositiveAllowed
	case "AllowNegativeAllowed":
		return &a.AllowNegativeAllowed
	case "AllowSpecialAllowed":
		return &a.AllowSpecialAllowed
	case "PairCanApplyOwnAllowed":
		return &a.PairCanApplyOwnAllowed
	case "PairCanApplyYoursAllowed":
		return &a.PairCanApplyYoursAllowed
	case "MaxMoodleTimeAllowed":
		return &a.MaxMoodleTimeAllowed
	case "AllowPermanentMoodlesAllowed":
		return &a.AllowPermanentMoodlesAllowed
	case "AllowRemovingMoodlesAllowed":
		return &a.AllowRemovingMoodlesAllowed
	case "CanToggleToyStateAllowed":
		return &a.CanToggleToyStateAllowed
	case "CanUseVibeRemoteAllowed":
		return &a.CanUseVibeRemoteAllowed
	case "CanToggleAlarmsAllowed":
		return &a.CanToggleAlarmsAllowed
	case "CanExecutePatternsAllowed":
		return &a.CanExecutePatternsAllowed
	case "CanToggleTriggersAllowed":
		return &a.CanToggleTriggersAllowed
	}
	return nil
}

func ApplyToAccess(a *model.PairAccess, patch Patch) error {
	ptr := accessBool(a, patch.Field)
	if ptr == nil {
		return unknownField(patch.Field)
	}
	v, err := patch.Value.asBool(patch.Field)
	if err != nil {
		return err
	}
	*ptr = v
	return nil
}

// AccessFieldFor names the access flag guarding a grant field.
func AccessFieldFor(field string) string {
	switch field {
	case "StartChar", "EndChar":
		return "TriggerPhraseAllowed"
	}
	return field + "Allowed"
}

// CanEditRemote reports whether the owner of access lets its pair change field
// on their grant row.
func CanEditRemote(access *model.PairAccess, field string) bool {
	if access == nil {
		return false
	}
	ptr := accessBool(access, AccessFieldFor(field))
	return ptr != nil && *ptr
}

func globalBool(g *model.GlobalPermissions, field string) *bool {
	switch field {
	case "SafewordUsed":
		return &g.SafewordUsed
	case "HardcoreSafewordUsed":
		return &g.HardcoreSafewordUsed
	case "ChatGarblerActive":
		return &g.ChatGarblerActive
	case "ChatGarblerLocked":
		return &g.ChatGarblerLocked
	case "WardrobeEnabled":
		return &g.WardrobeEnabled
	case "PuppeteerEnabled":
		return &g.PuppeteerEnabled
	case "MoodlesEnabled":
		return &g.MoodlesEnabled
	case "ToyboxEnabled":
		return &g.ToyboxEnabled
	case "GlobalAllowSitRequests":
		return &g.GlobalAllowSitRequests
	case "GlobalAllowMotionRequests":
		return &g.GlobalAllowMotionRequests
	case "GlobalAllowAllRequests":
		return &g.GlobalAllowAllRequests
	}
	return nil
}

func isSafewordField(field string) bool {
	switch field {
	case "Safeword", "SafewordUsed", "HardcoreSafewordUsed":
		return true
	}
	return false
}

// ApplyToGlobal assigns patch to the global row. Safeword fields are refused
// when remote is set.
func ApplyToGlobal(g *model.GlobalPermissions, patch Patch, remote bool) error {
	if remote && isSafewordField(patch.Field) {
		return &FieldError{Field: patch.Field, Reason: "cannot be changed by a pair"}
	}

	if ptr := globalBool(g, patch.Field); ptr != nil {
		v, err := patch.Value.asBool(patch.Field)
		if err != nil {
			return err
		}
		*ptr = v
		return nil
	}

	switch patch.Field {
	case "Safeword":
		v, err := patch.Value.asString(patch.Field)
		if err != nil {
			return err
		}
		g.Safeword = v
		return nil
	case "GlobalTriggerPhrase":
		v, err := patch.Value.asString(patch.Field)
		if err != nil {
			return err
		}
		g.GlobalTriggerPhrase = v
		return nil
	}
	return unknownField(patch.Field)
}

// CanEditGlobalRemote reports whether the owner of access lets its pair change
// the global field. Only the toggles with a matching access flag qualify.
func CanEditGlobalRemote(access *model.PairAccess, field string) bool {
	if access == nil || isSafewordField(field) {
		return false
	}
	switch field {
	case "ChatGarblerActive", "ChatGarblerLocked", "WardrobeEnabled",
		"PuppeteerEnabled", "MoodlesEnabled", "ToyboxEnabled":
		return *accessBool(access, field+"Allowed")
	}
	return false
}
