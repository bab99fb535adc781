package hub

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"pairing-hub/internal/broadcast"
	"pairing-hub/internal/event"
	"pairing-hub/internal/identity"
	"pairing-hub/internal/repository/model"
)

const (
	ReasonProfileDisabled   = "Your profile has been disabled by moderation."
	ReasonProfileRestricted = "You are not allowed to edit your profile."
	ReasonImageEncoding     = "Profile image is not valid base64."
	ReasonImageFormat       = "Profile image must be a PNG."
)

// ProfileUpdate carries the new profile content. A nil Image keeps the
// stored one and an empty one removes it.
type ProfileUpdate struct {
	User        string
	Description string
	Image       *string
}

func (h *Hub) SetProfile(ctx context.Context, caller identity.Identity, update ProfileUpdate) error {
	if update.User != "" && update.User != caller.UID {
		return refuse("You can only edit your own profile!")
	}

	reputation, err := h.repo.GetReputation(ctx, caller.UID)
	if err != nil {
		return fmt.Errorf("failed to get reputation: %w", err)
	}
	if reputation != nil && !reputation.ProfileEditing {
		h.serverMessage(ctx, caller.UID, event.SeverityError, ReasonProfileRestricted)
		return nil
	}

	profile, err := h.repo.GetProfile(ctx, caller.UID)
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		profile = &model.Profile{UserUID: caller.UID}
	}
	if profile.Disabled {
		h.serverMessage(ctx, caller.UID, event.SeverityError, ReasonProfileDisabled)
		return nil
	}

	if update.Image != nil {
		if *update.Image != "" {
			if reason := h.validateImage(*update.Image); reason != "" {
				h.serverMessage(ctx, caller.UID, event.SeverityWarning, "%s", reason)
				return nil
			}
		}
		profile.Base64Image = *update.Image
	}
	profile.Description = update.Description
	profile.UpdatedAt = h.now()

	if err := h.repo.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	self, err := h.userData(ctx, caller.UID)
	if err != nil {
		return err
	}
	change := event.ProfileChange{User: self}
	h.pusher.SendToUser(ctx, caller.UID, event.ProfileUpdated, change)

	pairs, err := h.bidirectionalPairs(ctx, caller.UID)
	if err != nil {
		return err
	}
	if _, err := h.router.Deliver(ctx, caller.UID, keys(pairs), nil,
		broadcast.Static(event.ProfileUpdated, change)); err != nil {
		h.logger.Warnw("failed to broadcast profile update", "uid", caller.UID, "error", err)
	}
	return nil
}

// validateImage returns the reason the image is refused, or "".
func (h *Hub) validateImage(encoded string) string {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return ReasonImageEncoding
	}
	if h.cfg.ProfileMaxBytes > 0 && len(raw) > h.cfg.ProfileMaxBytes {
		return fmt.Sprintf("Profile image must not exceed %d bytes.", h.cfg.ProfileMaxBytes)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return ReasonImageFormat
	}
	if limit := h.cfg.ProfileMaxDimension; limit > 0 && (cfg.Width > limit || cfg.Height > limit) {
		return fmt.Sprintf("Profile image must not exceed %dx%d pixels.", limit, limit)
	}
	return ""
}

// GetProfile returns the profile of the caller or one of its pairs. Disabled
// profiles are returned without content to anyone but their owner.
func (h *Hub) GetProfile(ctx context.Context, caller identity.Identity, target string) (*model.Profile, error) {
	if target == "" {
		target = caller.UID
	}

	reputation, err := h.repo.GetReputation(ctx, caller.UID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reputation: %w", err)
	}
	if reputation != nil && !reputation.ProfileViewing {
		return nil, refuse("You are not allowed to view profiles.")
	}

	if target != caller.UID {
		pair, err := h.repo.GetPair(ctx, caller.UID, target)
		if err != nil {
			return nil, fmt.Errorf("failed to get pair: %w", err)
		}
		if pair == nil {
			return nil, refuse("You can only view the profiles of your pairs.")
		}
	}

	profile, err := h.repo.GetProfile(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return &model.Profile{UserUID: target}, nil
	}
	if profile.Disabled && target != caller.UID {
		return &model.Profile{UserUID: target, Disabled: true, UpdatedAt: profile.UpdatedAt}, nil
	}
	return profile, nil
}

func (h *Hub) GetOnlineUserCount(ctx context.Context) (int, error) {
	count, err := h.dir.CountOnline(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("failed to count online users: %w", err)
	}
	return count, nil
}
