package hub

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"pairing-hub/internal/event"
	"pairing-hub/internal/repository/model"
	"pairing-hub/internal/utils"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedPNG(t *testing.T, width, height int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestSetProfile(t *testing.T) {
	f := pairedFixture(t)
	ctx := context.Background()
	f.online("U2")
	img := encodedPNG(t, 8, 8)

	require.NoError(t, f.hub.SetProfile(ctx, f.online("U1"), ProfileUpdate{Description: "hello", Image: &img}))

	profile := f.repo.profiles["U1"]
	require.NotNil(t, profile)
	assert.Equal(t, "hello", profile.Description)
	assert.Equal(t, img, profile.Base64Image)
	assert.Equal(t, testNow, profile.UpdatedAt)

	want := event.ProfileChange{User: event.UserData{UID: "U1"}}
	for _, uid := range []string{"U1", "U2"} {
		got := f.pushes.to(uid)
		require.Len(t, got, 1, uid)
		assert.Equal(t, event.ProfileUpdated, got[0].Event)
		assert.Equal(t, want, got[0].Payload)
	}

	// Leaving the image out keeps the stored one.
	require.NoError(t, f.hub.SetProfile(ctx, f.online("U1"), ProfileUpdate{Description: "bye"}))
	assert.Equal(t, img, f.repo.profiles["U1"].Base64Image)
	assert.Equal(t, "bye", f.repo.profiles["U1"].Description)
}

func TestSetProfile_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		update func(t *testing.T) ProfileUpdate
		setup  func(f *fixture)

		wantMessage string
	}{
		{
			name:        "not base64",
			update:      func(t *testing.T) ProfileUpdate { return ProfileUpdate{Image: utils.PointerOf("!!!")} },
			wantMessage: ReasonImageEncoding,
		},
		{
			name: "not a png",
			update: func(t *testing.T) ProfileUpdate {
				return ProfileUpdate{Image: utils.PointerOf(base64.StdEncoding.EncodeToString([]byte("GIF89a....")))}
			},
			wantMessage: ReasonImageFormat,
		},
		{
			name: "too wide",
			update: func(t *testing.T) ProfileUpdate {
				return ProfileUpdate{Image: utils.PointerOf(encodedPNG(t, 17, 4))}
			},
			wantMessage: "Profile image must not exceed 16x16 pixels.",
		},
		{
			name: "too many bytes",
			update: func(t *testing.T) ProfileUpdate {
				return ProfileUpdate{Image: utils.PointerOf(base64.StdEncoding.EncodeToString(make([]byte, 5000)))}
			},
			wantMessage: "Profile image must not exceed 4096 bytes.",
		},
		{
			name:   "disabled by moderation",
			update: func(t *testing.T) ProfileUpdate { return ProfileUpdate{Description: "x"} },
			setup: func(f *fixture) {
				f.repo.profiles["U1"] = &model.Profile{UserUID: "U1", Description: "old", Disabled: true}
			},
			wantMessage: ReasonProfileDisabled,
		},
		{
			name:   "editing restricted",
			update: func(t *testing.T) ProfileUpdate { return ProfileUpdate{Description: "x"} },
			setup: func(f *fixture) {
				rep := model.DefaultReputation("U1")
				rep.ProfileEditing = false
				f.repo.reputation["U1"] = rep
			},
			wantMessage: ReasonProfileRestricted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "U1")
			if tt.setup != nil {
				tt.setup(f)
			}
			before := f.repo.profiles["U1"]

			require.NoError(t, f.hub.SetProfile(context.Background(), f.online("U1"), tt.update(t)))

			got := f.pushes.to("U1")
			require.Len(t, got, 1)
			assert.Equal(t, event.ReceiveServerMessage, got[0].Event)
			assert.Equal(t, tt.wantMessage, got[0].Payload.(event.ServerMessage).Message)
			assert.Equal(t, before, f.repo.profiles["U1"])
		})
	}
}

func TestSetProfile_OtherUser(t *testing.T) {
	f := newFixture(t, "U1", "U2")

	err := f.hub.SetProfile(context.Background(), f.online("U1"), ProfileUpdate{User: "U2", Description: "x"})
	var hubErr *Error
	assert.ErrorAs(t, err, &hubErr)
	assert.Empty(t, f.repo.profiles)
}

func TestGetProfile(t *testing.T) {
	f := pairedFixture(t)
	ctx := context.Background()
	f.repo.profiles["U2"] = &model.Profile{UserUID: "U2", Description: "hi"}

	profile, err := f.hub.GetProfile(ctx, f.online("U1"), "U2")
	require.NoError(t, err)
	assert.Equal(t, "hi", profile.Description)

	profile, err = f.hub.GetProfile(ctx, f.online("U1"), "")
	require.NoError(t, err)
	assert.Equal(t, &model.Profile{UserUID: "U1"}, profile)

	_, err = f.hub.GetProfile(ctx, f.online("U3"), "U2")
	var hubErr *Error
	assert.ErrorAs(t, err, &hubErr)

	f.repo.profiles["U2"].Disabled = true
	profile, err = f.hub.GetProfile(ctx, f.online("U1"), "U2")
	require.NoError(t, err)
	assert.True(t, profile.Disabled)
	assert.Empty(t, profile.Description)

	profile, err = f.hub.GetProfile(ctx, f.online("U2"), "U2")
	require.NoError(t, err)
	assert.Equal(t, "hi", profile.Description)

	rep := model.DefaultReputation("U1")
	rep.ProfileViewing = false
	f.repo.reputation["U1"] = rep
	_, err = f.hub.GetProfile(ctx, f.online("U1"), "U2")
	assert.ErrorAs(t, err, &hubErr)
}

func TestGetOnlineUserCount(t *testing.T) {
	f := newFixture(t)
	f.online("U1")
	f.online("U2")

	count, err := f.hub.GetOnlineUserCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
