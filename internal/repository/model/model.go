package model

import (
	"pairing-hub/internal/lock"
	"time"
)

const (
	GagSlotCount         = 3
	RestrictionSlotCount = 5
)

type User struct {
	UID       string    `bson:"_id" json:"uid"`
	Alias     string    `bson:"alias,omitempty" json:"alias,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	LastLogin time.Time `bson:"lastLogin" json:"lastLogin"`
	// Tier is supporter metadata only.
	Tier int `bson:"tier" json:"tier"`
}

// AliasOrUID is the display identifier of the user.
func (u *User) AliasOrUID() string {
	if u.Alias != "" {
		return u.Alias
	}
	return u.UID
}

// ClientPair is one directed edge: UserUID has added OtherUserUID.
type ClientPair struct {
	Id           string    `bson:"_id" json:"-"`
	UserUID      string    `bson:"userUid" json:"userUid"`
	OtherUserUID string    `bson:"otherUserUid" json:"otherUserUid"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

func PairId(userUID, otherUID string) string {
	return userUID + ":" + otherUID
}

func NewClientPair(userUID, otherUID string, now time.Time) *ClientPair {
	return &ClientPair{
		Id:           PairId(userUID, otherUID),
		UserUID:      userUID,
		OtherUserUID: otherUID,
		CreatedAt:    now,
	}
}

// PairPermissions is what OtherUserUID may do to UserUID.
type PairPermissions struct {
	Id           string `bson:"_id" json:"-"`
	UserUID      string `bson:"userUid" json:"userUid"`
	OtherUserUID string `bson:"otherUserUid" json:"otherUserUid"`

	IsPaused        bool          `bson:"isPaused" json:"isPaused"`
	PermanentLocks  bool          `bson:"permanentLocks" json:"permanentLocks"`
	MaxLockTime     time.Duration `bson:"maxLockTime" json:"maxLockTime"`
	OwnerLocks      bool          `bson:"ownerLocks" json:"ownerLocks"`
	DevotionalLocks bool          `bson:"devotionalLocks" json:"devotionalLocks"`

	ApplyGags  bool          `bson:"applyGags" json:"applyGags"`
	LockGags   bool          `bson:"lockGags" json:"lockGags"`
	MaxGagTime time.Duration `bson:"maxGagTime" json:"maxGagTime"`
	UnlockGags bool          `bson:"unlockGags" json:"unlockGags"`
	RemoveGags bool          `bson:"removeGags" json:"removeGags"`

	ApplyRestrictions  bool          `bson:"applyRestrictions" json:"applyRestrictions"`
	LockRestrictions   bool          `bson:"lockRestrictions" json:"lockRestrictions"`
	MaxRestrictionTime time.Duration `bson:"maxRestrictionTime" json:"maxRestrictionTime"`
	UnlockRestrictions bool          `bson:"unlockRestrictions" json:"unlockRestrictions"`
	RemoveRestrictions bool          `bson:"removeRestrictions" json:"removeRestrictions"`

	ApplyRestraintSets  bool          `bson:"applyRestraintSets" json:"applyRestraintSets"`
	LockRestraintSets   bool          `bson:"lockRestraintSets" json:"lockRestraintSets"`
	MaxRestraintTime    time.Duration `bson:"maxRestraintTime" json:"maxRestraintTime"`
	UnlockRestraintSets bool          `bson:"unlockRestraintSets" json:"unlockRestraintSets"`
	RemoveRestraintSets bool          `bson:"removeRestraintSets" json:"removeRestraintSets"`

	TriggerPhrase       string `bson:"triggerPhrase" json:"triggerPhrase"`
	StartChar           string `bson:"startChar" json:"startChar"`
	EndChar             string `bson:"endChar" json:"endChar"`
	AllowSitRequests    bool   `bson:"allowSitRequests" json:"allowSitRequests"`
	AllowMotionRequests bool   `bson:"allowMotionRequests" json:"allowMotionRequests"`
	AllowAllRequests    bool   `bson:"allowAllRequests" json:"allowAllRequests"`

	AllowPositive         bool          `bson:"allowPositive" json:"allowPositive"`
	AllowNegative         bool          `bson:"allowNegative" json:"allowNegative"`
	AllowSpecial          bool          `bson:"allowSpecial" json:"allowSpecial"`
	PairCanApplyOwn       bool          `bson:"pairCanApplyOwn" json:"pairCanApplyOwn"`
	PairCanApplyYours     bool          `bson:"pairCanApplyYours" json:"pairCanApplyYours"`
	MaxMoodleTime         time.Duration `bson:"maxMoodleTime" json:"maxMoodleTime"`
	AllowPermanentMoodles bool          `bson:"allowPermanentMoodles" json:"allowPermanentMoodles"`
	AllowRemovingMoodles  bool          `bson:"allowRemovingMoodles" json:"allowRemovingMoodles"`

	CanToggleToyState  bool `bson:"canToggleToyState" json:"canToggleToyState"`
	CanUseVibeRemote   bool `bson:"canUseVibeRemote" json:"canUseVibeRemote"`
	CanToggleAlarms    bool `bson:"canToggleAlarms" json:"canToggleAlarms"`
	CanExecutePatterns bool `bson:"canExecutePatterns" json:"canExecutePatterns"`
	CanToggleTriggers  bool `bson:"canToggleTriggers" json:"canToggleTriggers"`

	// Hardcore activation fields hold the UID of the enactor, empty when inactive.
	AllowForcedFollow bool   `bson:"allowForcedFollow" json:"allowForcedFollow"`
	ForcedFollow      string `bson:"forcedFollow" json:"forcedFollow"`
	AllowForcedSit    bool   `bson:"allowForcedSit" json:"allowForcedSit"`
	ForcedSit         string `bson:"forcedSit" json:"forcedSit"`
	AllowForcedStay   bool   `bson:"allowForcedStay" json:"allowForcedStay"`
	ForcedStay        string `bson:"forcedStay" json:"forcedStay"`
	AllowBlindfold    bool   `bson:"allowBlindfold" json:"allowBlindfold"`
	Blindfolded       string `bson:"blindfolded" json:"blindfolded"`
}

func DefaultPairPermissions(userUID, otherUID string) *PairPermissions {
	return &PairPermissions{
		Id:           PairId(userUID, otherUID),
		UserUID:      userUID,
		OtherUserUID: otherUID,
		StartChar:    "(",
		EndChar:      ")",
	}
}

// PairAccess decides which of UserUID's settings OtherUserUID may change remotely.
type PairAccess struct {
	Id           string `bson:"_id" json:"-"`
	UserUID      string `bson:"userUid" json:"userUid"`
	OtherUserUID string `bson:"otherUserUid" json:"otherUserUid"`

	ChatGarblerActiveAllowed bool `bson:"chatGarblerActiveAllowed" json:"chatGarblerActiveAllowed"`
	ChatGarblerLockedAllowed bool `bson:"chatGarblerLockedAllowed" json:"chatGarblerLockedAllowed"`
	WardrobeEnabledAllowed   bool `bson:"wardrobeEnabledAllowed" json:"wardrobeEnabledAllowed"`
	PuppeteerEnabledAllowed  bool `bson:"puppeteerEnabledAllowed" json:"puppeteerEnabledAllowed"`
	MoodlesEnabledAllowed    bool `bson:"moodlesEnabledAllowed" json:"moodlesEnabledAllowed"`
	ToyboxEnabledAllowed     bool `bson:"toyboxEnabledAllowed" json:"toyboxEnabledAllowed"`

	IsPausedAllowed        bool `bson:"isPausedAllowed" json:"isPausedAllowed"`
	PermanentLocksAllowed  bool `bson:"permanentLocksAllowed" json:"permanentLocksAllowed"`
	MaxLockTimeAllowed     bool `bson:"maxLockTimeAllowed" json:"maxLockTimeAllowed"`
	OwnerLocksAllowed      bool `bson:"ownerLocksAllowed" json:"ownerLocksAllowed"`
	DevotionalLocksAllowed bool `bson:"devotionalLocksAllowed" json:"devotionalLocksAllowed"`

	ApplyGagsAllowed  bool `bson:"applyGagsAllowed" json:"applyGagsAllowed"`
	LockGagsAllowed   bool `bson:"lockGagsAllowed" json:"lockGagsAllowed"`
	MaxGagTimeAllowed bool `bson:"maxGagTimeAllowed" json:"maxGagTimeAllowed"`
	UnlockGagsAllowed bool `bson:"unlockGagsAllowed" json:"unlockGagsAllowed"`
	RemoveGagsAllowed bool `bson:"removeGagsAllowed" json:"removeGagsAllowed"`

	ApplyRestrictionsAllowed  bool `bson:"applyRestrictionsAllowed" json:"applyRestrictionsAllowed"`
	LockRestrictionsAllowed   bool `bson:"lockRestrictionsAllowed" json:"lockRestrictionsAllowed"`
	MaxRestrictionTimeAllowed bool `bson:"maxRestrictionTimeAllowed" json:"maxRestrictionTimeAllowed"`
	UnlockRestrictionsAllowed bool `bson:"unlockRestrictionsAllowed" json:"unlockRestrictionsAllowed"`
	RemoveRestrictionsAllowed bool `bson:"removeRestrictionsAllowed" json:"removeRestrictionsAllowed"`

	ApplyRestraintSetsAllowed  bool `bson:"applyRestraintSetsAllowed" json:"applyRestraintSetsAllowed"`
	LockRestraintSetsAllowed   bool `bson:"lockRestraintSetsAllowed" json:"lockRestraintSetsAllowed"`
	MaxRestraintTimeAllowed    bool `bson:"maxRestraintTimeAllowed" json:"maxRestraintTimeAllowed"`
	UnlockRestraintSetsAllowed bool `bson:"unlockRestraintSetsAllowed" json:"unlockRestraintSetsAllowed"`
	RemoveRestraintSetsAllowed bool `bson:"removeRestraintSetsAllowed" json:"removeRestraintSetsAllowed"`

	TriggerPhraseAllowed       bool `bson:"triggerPhraseAllowed" json:"triggerPhraseAllowed"`
	AllowSitRequestsAllowed    bool `bson:"allowSitRequestsAllowed" json:"allowSitRequestsAllowed"`
	AllowMotionRequestsAllowed bool `bson:"allowMotionRequestsAllowed" json:"allowMotionRequestsAllowed"`
	AllowAllRequestsAllowed    bool `bson:"allowAllRequestsAllowed" json:"allowAllRequestsAllowed"`

	AllowPositiveAllowed         bool `bson:"allowPositiveAllowed" json:"allowPositiveAllowed"`
	AllowNegativeAllowed         bool `bson:"allowNegativeAllowed" json:"allowNegativeAllowed"`
	AllowSpecialAllowed          bool `bson:"allowSpecialAllowed" json:"allowSpecialAllowed"`
	PairCanApplyOwnAllowed       bool `bson:"pairCanApplyOwnAllowed" json:"pairCanApplyOwnAllowed"`
	PairCanApplyYoursAllowed     bool `bson:"pairCanApplyYoursAllowed" json:"pairCanApplyYoursAllowed"`
	MaxMoodleTimeAllowed         bool `bson:"maxMoodleTimeAllowed" json:"maxMoodleTimeAllowed"`
	AllowPermanentMoodlesAllowed bool `bson:"allowPermanentMoodlesAllowed" json:"allowPermanentMoodlesAllowed"`
	AllowRemovingMoodlesAllowed  bool `bson:"allowRemovingMoodlesAllowed" json:"allowRemovingMoodlesAllowed"`

	CanToggleToyStateAllowed  bool `bson:"canToggleToyStateAllowed" json:"canToggleToyStateAllowed"`
	CanUseVibeRemoteAllowed   bool `bson:"canUseVibeRemoteAllowed" json:"canUseVibeRemoteAllowed"`
	CanToggleAlarmsAllowed    bool `bson:"canToggleAlarmsAllowed" json:"canToggleAlarmsAllowed"`
	CanExecutePatternsAllowed bool `bson:"canExecutePatternsAllowed" json:"canExecutePatternsAllowed"`
	CanToggleTriggersAllowed  bool `bson:"canToggleTriggersAllowed" json:"canToggleTriggersAllowed"`
}

func DefaultPairAccess(userUID, otherUID string) *PairAccess {
	return &PairAccess{
		Id:           PairId(userUID, otherUID),
		UserUID:      userUID,
		OtherUserUID: otherUID,
	}
}

type GlobalPermissions struct {
	UserUID string `bson:"_id" json:"userUid"`

	// Safeword fields are never written by anyone but the owner.
	Safeword             string `bson:"safeword" json:"-"`
	SafewordUsed         bool   `bson:"safewordUsed" json:"safewordUsed"`
	HardcoreSafewordUsed bool   `bson:"hardcoreSafewordUsed" json:"hardcoreSafewordUsed"`

	ChatGarblerActive bool `bson:"chatGarblerActive" json:"chatGarblerActive"`
	ChatGarblerLocked bool `bson:"chatGarblerLocked" json:"chatGarblerLocked"`

	// The enable flags double as profile visibility opt-ins.
	WardrobeEnabled  bool `bson:"wardrobeEnabled" json:"wardrobeEnabled"`
	PuppeteerEnabled bool `bson:"puppeteerEnabled" json:"puppeteerEnabled"`
	MoodlesEnabled   bool `bson:"moodlesEnabled" json:"moodlesEnabled"`
	ToyboxEnabled    bool `bson:"toyboxEnabled" json:"toyboxEnabled"`

	GlobalTriggerPhrase       string `bson:"globalTriggerPhrase" json:"globalTriggerPhrase"`
	GlobalAllowSitRequests    bool   `bson:"globalAllowSitRequests" json:"globalAllowSitRequests"`
	GlobalAllowMotionRequests bool   `bson:"globalAllowMotionRequests" json:"globalAllowMotionRequests"`
	GlobalAllowAllRequests    bool   `bson:"globalAllowAllRequests" json:"globalAllowAllRequests"`
}

func DefaultGlobalPermissions(userUID string) *GlobalPermissions {
	return &GlobalPermissions{
		UserUID:          userUID,
		WardrobeEnabled:  true,
		PuppeteerEnabled: true,
		MoodlesEnabled:   true,
		ToyboxEnabled:    true,
	}
}

// Slot holds one restriction item and the padlock fastened to it.
type Slot struct {
	Item     string       `bson:"item" json:"item"`
	Padlock  lock.Padlock `bson:"padlock" json:"padlock"`
	Password string       `bson:"password" json:"-"`
	Timer    time.Time    `bson:"timer" json:"timer"`
	Assigner string       `bson:"assigner" json:"assigner"`
}

func (s *Slot) IsLocked() bool {
	return s.Padlock != lock.None
}

func (s *Slot) IsEmpty() bool {
	return s.Item == ""
}

type ActiveState struct {
	UserUID      string                     `bson:"_id" json:"userUid"`
	Gags         [GagSlotCount]Slot         `bson:"gags" json:"gags"`
	Restrictions [RestrictionSlotCount]Slot `bson:"restrictions" json:"restrictions"`
	Restraint    Slot                       `bson:"restraint" json:"restraint"`
}

type Profile struct {
	UserUID     string    `bson:"_id" json:"userUid"`
	Description string    `bson:"description" json:"description"`
	Base64Image string    `bson:"base64Image,omitempty" json:"base64Image,omitempty"`
	Disabled    bool      `bson:"disabled" json:"disabled"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Reputation flags are true while the capability is allowed.
type Reputation struct {
	UserUID        string    `bson:"_id" json:"userUid"`
	ProfileViewing bool      `bson:"profileViewing" json:"profileViewing"`
	ProfileEditing bool      `bson:"profileEditing" json:"profileEditing"`
	ChatUsage      bool      `bson:"chatUsage" json:"chatUsage"`
	BannedUntil    time.Time `bson:"bannedUntil,omitempty" json:"bannedUntil,omitempty"`
}

func DefaultReputation(userUID string) *Reputation {
	return &Reputation{
		UserUID:        userUID,
		ProfileViewing: true,
		ProfileEditing: true,
		ChatUsage:      true,
	}
}
