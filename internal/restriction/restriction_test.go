package restriction

import (
	"pairing-hub/internal/lock"
	"pairing-hub/internal/permission"
	"pairing-hub/internal/repository/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestLock(t *testing.T) {
	slot := &model.Slot{Item: "Ball Gag"}
	grant := &model.PairPermissions{LockGags: true, MaxGagTime: time.Hour}

	err := Lock(slot, grant, permission.LockRequest{
		Padlock:   lock.TimerPassword,
		Password:  "pw",
		Duration:  30 * time.Minute,
		Requester: "b",
	}, permission.Gags, now)
	require.NoError(t, err)

	assert.Equal(t, lock.TimerPassword, slot.Padlock)
	assert.Equal(t, "pw", slot.Password)
	assert.Equal(t, now.Add(30*time.Minute), slot.Timer)
	assert.Equal(t, "b", slot.Assigner)
}

func TestLock_FiveMinutesIgnoresDuration(t *testing.T) {
	slot := &model.Slot{Item: "Ball Gag"}

	err := Lock(slot, nil, permission.LockRequest{Padlock: lock.FiveMinutes, Duration: time.Hour, Self: true, Requester: "a"}, permission.Gags, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(lock.FiveMinutesDuration), slot.Timer)
	assert.Empty(t, slot.Password)
}

func TestLock_Errors(t *testing.T) {
	var conflict *ConflictError
	err := Lock(&model.Slot{}, nil, permission.LockRequest{Padlock: lock.Metal, Self: true}, permission.Gags, now)
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, permission.ReasonNothingToLock, conflict.Reason)

	var denied *DeniedError
	slot := &model.Slot{Item: "Ball Gag"}
	err = Lock(slot, &model.PairPermissions{}, permission.LockRequest{Padlock: lock.Metal, Requester: "b"}, permission.Gags, now)
	assert.ErrorAs(t, err, &denied)
	assert.Equal(t, lock.None, slot.Padlock)
}

func TestUnlock_ResetsPadlockFields(t *testing.T) {
	slot := &model.Slot{Item: "Ball Gag", Padlock: lock.Password, Password: "pw", Timer: now.Add(time.Hour), Assigner: "b"}

	err := Unlock(slot, nil, permission.UnlockRequest{Password: "pw", Requester: "b", Now: now})
	require.NoError(t, err)

	assert.Equal(t, model.Slot{Item: "Ball Gag", Padlock: lock.None, Timer: now}, *slot)
}

func TestUnlock_MimicClearsItem(t *testing.T) {
	slot := &model.Slot{Item: "Ball Gag", Padlock: lock.Mimic, Assigner: "a"}

	require.NoError(t, Unlock(slot, nil, permission.UnlockRequest{Requester: "a", Now: now}))
	assert.Empty(t, slot.Item)
	assert.Equal(t, lock.None, slot.Padlock)
}

func TestUnlock_Errors(t *testing.T) {
	var conflict *ConflictError
	err := Unlock(&model.Slot{Item: "Ball Gag"}, nil, permission.UnlockRequest{Requester: "a", Now: now})
	assert.ErrorAs(t, err, &conflict)

	var denied *DeniedError
	slot := &model.Slot{Item: "Ball Gag", Padlock: lock.Combination, Password: "1234", Assigner: "a"}
	err = Unlock(slot, nil, permission.UnlockRequest{Password: "4321", Requester: "b", Now: now})
	assert.ErrorAs(t, err, &denied)
	assert.Equal(t, permission.ReasonWrongPassword, denied.Reason)
	assert.Equal(t, lock.Combination, slot.Padlock)
}

func TestApplyAndRemove(t *testing.T) {
	grant := &model.PairPermissions{ApplyRestrictions: true, RemoveRestrictions: true}
	slot := &model.Slot{}

	require.NoError(t, Apply(slot, grant, "Blindfold", false, permission.Restrictions))
	assert.Equal(t, "Blindfold", slot.Item)

	// Swapping an unlocked item is allowed.
	require.NoError(t, Apply(slot, grant, "Cuffs", false, permission.Restrictions))
	assert.Equal(t, "Cuffs", slot.Item)

	slot.Padlock = lock.Metal
	var conflict *ConflictError
	assert.ErrorAs(t, Apply(slot, grant, "Rope", false, permission.Restrictions), &conflict)
	assert.ErrorAs(t, Remove(slot, grant, false, permission.Restrictions), &conflict)

	slot.Padlock = lock.None
	require.NoError(t, Remove(slot, grant, false, permission.Restrictions))
	assert.Equal(t, model.Slot{}, *slot)

	assert.ErrorAs(t, Apply(slot, grant, "", true, permission.Restrictions), &conflict)
}
