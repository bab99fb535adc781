// Package event names the pushes the hub sends to clients and shapes their payloads.
package event

import (
	"encoding/json"
	"pairing-hub/internal/repository/model"
)

const (
	ReceiveServerMessage        = "ReceiveServerMessage"
	UserAddPairConfirmed        = "UserAddPairConfirmed"
	UserRemovePairConfirmed     = "UserRemovePairConfirmed"
	PairIndividualStatusChanged = "PairIndividualStatusChanged"
	UserWentOnline              = "UserWentOnline"
	UserWentOffline             = "UserWentOffline"
	ReceiveCharacterData        = "ReceiveCharacterData"
	ProfileUpdated              = "ProfileUpdated"

	PairPermissionChanged   = "PairPermissionChanged"
	GlobalPermissionChanged = "GlobalPermissionChanged"
	ActiveStateChanged      = "ActiveStateChanged"
)

type Severity string

const (
	SeverityInfo    Severity = "Info"
	SeverityWarning Severity = "Warning"
	SeverityError   Severity = "Error"
)

type PairStatus string

const (
	OneSided      PairStatus = "OneSided"
	Bidirectional PairStatus = "Bidirectional"
)

type UserData struct {
	UID   string `json:"uid"`
	Alias string `json:"alias,omitempty"`
}

func UserDataOf(u *model.User) UserData {
	if u == nil {
		return UserData{}
	}
	return UserData{UID: u.UID, Alias: u.Alias}
}

type ServerMessage struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// PairStub describes one pair from the point of view of the user receiving it.
type PairStub struct {
	User   UserData   `json:"user"`
	Status PairStatus `json:"status"`

	OwnPermissions   *model.PairPermissions   `json:"ownPermissions,omitempty"`
	OwnAccess        *model.PairAccess        `json:"ownAccess,omitempty"`
	OtherPermissions *model.PairPermissions   `json:"otherPermissions,omitempty"`
	OtherAccess      *model.PairAccess        `json:"otherAccess,omitempty"`
	OtherGlobal      *model.GlobalPermissions `json:"otherGlobal,omitempty"`
}

type PairRef struct {
	User UserData `json:"user"`
}

type StatusChange struct {
	User   UserData   `json:"user"`
	Status PairStatus `json:"status"`
}

type OnlineUser struct {
	User    UserData `json:"user"`
	Session string   `json:"session,omitempty"`
}

type CharacterData struct {
	Sender UserData        `json:"sender"`
	Data   json.RawMessage `json:"data"`
}

type ProfileChange struct {
	User UserData `json:"user"`
}

type PermissionChange struct {
	User  UserData `json:"user"`
	Field string   `json:"field"`
	// Permissions is the full row after the change.
	Permissions any    `json:"permissions"`
	Enactor     string `json:"enactor"`
}

type StateChange struct {
	User    UserData           `json:"user"`
	State   *model.ActiveState `json:"state"`
	Enactor string             `json:"enactor"`
}

// Frame is the wire shape of a push.
type Frame struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

func Encode(name string, payload any) ([]byte, error) {
	return json.Marshal(Frame{Event: name, Payload: payload})
}
