package permission

import (
	"fmt"
	"pairing-hub/internal/repository/model"
)

type HardcoreField int

const (
	ForcedFollow HardcoreField = iota
	ForcedSit
	ForcedStay
	Blindfolded
)

var hardcoreNames = map[HardcoreField]string{
	ForcedFollow: "ForcedFollow",
	ForcedSit:    "ForcedSit",
	ForcedStay:   "ForcedStay",
	Blindfolded:  "Blindfolded",
}

func (f HardcoreField) String() string {
	if name, ok := hardcoreNames[f]; ok {
		return name
	}
	return fmt.Sprintf("HardcoreField(%d)", int(f))
}

func ParseHardcoreField(name string) (HardcoreField, error) {
	for f, n := range hardcoreNames {
		if n == name {
			return f, nil
		}
	}
	return 0, &FieldError{Field: name, Reason: "unknown hardcore state"}
}

const (
	ReasonHardcoreSafeword = "Hardcore safeword is active!"
	ReasonHardcoreActive   = "That state is already active!"
	ReasonHardcoreInactive = "That state is not active!"
)

// slots returns pointers to the allow flag and the activation field for f.
func (f HardcoreField) slots(grant *model.PairPermissions) (*bool, *string) {
	switch f {
	case ForcedFollow:
		return &grant.AllowForcedFollow, &grant.ForcedFollow
	case ForcedSit:
		return &grant.AllowForcedSit, &grant.ForcedSit
	case ForcedStay:
		return &grant.AllowForcedStay, &grant.ForcedStay
	case Blindfolded:
		return &grant.AllowBlindfold, &grant.Blindfolded
	}
	panic(fmt.Sprintf("permission: unhandled hardcore field %v", f))
}

// CanApplyHardcoreState decides whether requester may toggle field on the grant
// row of the target. global belongs to the target.
func CanApplyHardcoreState(global *model.GlobalPermissions, grant *model.PairPermissions, field HardcoreField, enable bool, requester string) (bool, string) {
	if grant == nil {
		return false, fmt.Sprintf("No permission to change %s!", field)
	}
	allowed, active := field.slots(grant)

	if enable {
		if global != nil && global.HardcoreSafewordUsed {
			return false, ReasonHardcoreSafeword
		}
		if !*allowed {
			return false, fmt.Sprintf("No permission to change %s!", field)
		}
		if *active != "" {
			return false, ReasonHardcoreActive
		}
		return true, ""
	}

	if *active == "" {
		return false, ReasonHardcoreInactive
	}
	if *active == requester || *allowed {
		return true, ""
	}
	return false, fmt.Sprintf("No permission to change %s!", field)
}

// SetHardcoreState records requester as the enactor of field, or clears it.
func SetHardcoreState(grant *model.PairPermissions, field HardcoreField, enable bool, requester string) {
	_, active := field.slots(grant)
	if enable {
		*active = requester
	} else {
		*active = ""
	}
}

// HardcoreActive reports whether any hardcore state is currently enacted.
func HardcoreActive(grant *model.PairPermissions) bool {
	return grant.ForcedFollow != "" || grant.ForcedSit != "" || grant.ForcedStay != "" || grant.Blindfolded != ""
}
