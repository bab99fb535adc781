package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"pairing-hub/internal/broadcast"
	"pairing-hub/internal/event"
	"pairing-hub/internal/identity"
	"pairing-hub/internal/repository"
	"pairing-hub/internal/repository/model"
)

func (h *Hub) AddPair(ctx context.Context, caller identity.Identity, target string) error {
	if target == "" || target == caller.UID {
		return nil
	}

	other, err := h.repo.GetUserByUIDOrAlias(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to resolve user: %w", err)
	}
	if other == nil {
		h.serverMessage(ctx, caller.UID, event.SeverityWarning, "Cannot pair with %s, they don't exist", target)
		return nil
	}
	if other.UID == caller.UID {
		return nil
	}

	existing, err := h.repo.GetPair(ctx, caller.UID, other.UID)
	if err != nil {
		return fmt.Errorf("failed to get pair: %w", err)
	}
	if existing != nil {
		h.serverMessage(ctx, caller.UID, event.SeverityInfo, "You are already paired with %s", other.AliasOrUID())
		return nil
	}

	perms := model.DefaultPairPermissions(caller.UID, other.UID)
	access := model.DefaultPairAccess(caller.UID, other.UID)
	err = h.repo.CreatePair(ctx, model.NewClientPair(caller.UID, other.UID, h.now()), perms, access)
	if errors.Is(err, repository.ErrPairExists) {
		h.serverMessage(ctx, caller.UID, event.SeverityInfo, "You are already paired with %s", other.AliasOrUID())
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create pair: %w", err)
	}

	reverse, err := h.repo.GetPair(ctx, other.UID, caller.UID)
	if err != nil {
		return fmt.Errorf("failed to get pair: %w", err)
	}
	bidirectional := reverse != nil

	stub := event.PairStub{
		User:           event.UserDataOf(other),
		Status:         pairStatus(bidirectional),
		OwnPermissions: perms,
		OwnAccess:      access,
	}
	if bidirectional {
		if err := h.fillOtherSide(ctx, &stub, caller.UID, other.UID); err != nil {
			return err
		}
	}
	h.pusher.SendToUser(ctx, caller.UID, event.UserAddPairConfirmed, stub)

	if !bidirectional {
		return nil
	}

	h.invalidatePairs(ctx, caller.UID, other.UID)

	self, err := h.userData(ctx, caller.UID)
	if err != nil {
		return err
	}
	h.pusher.SendToUser(ctx, other.UID, event.PairIndividualStatusChanged,
		event.StatusChange{User: self, Status: event.Bidirectional})

	session, err := h.dir.Lookup(ctx, other.UID)
	if err != nil {
		return fmt.Errorf("failed to look up presence: %w", err)
	}
	if session != "" {
		h.pusher.SendToUser(ctx, caller.UID, event.UserWentOnline,
			event.OnlineUser{User: event.UserDataOf(other), Session: session})
		h.pusher.SendToUser(ctx, other.UID, event.UserWentOnline,
			event.OnlineUser{User: self, Session: caller.Session})
	}
	return nil
}

// fillOtherSide adds the rows other holds toward uid to stub.
func (h *Hub) fillOtherSide(ctx context.Context, stub *event.PairStub, uid string, other string) error {
	perms, err := h.repo.GetPairPermissions(ctx, other, uid)
	if err != nil {
		return fmt.Errorf("failed to get pair permissions: %w", err)
	}
	access, err := h.repo.GetPairAccess(ctx, other, uid)
	if err != nil {
		return fmt.Errorf("failed to get pair access: %w", err)
	}
	global, err := h.repo.GetGlobalPermissions(ctx, other)
	if err != nil {
		return fmt.Errorf("failed to get global permissions: %w", err)
	}

	stub.OtherPermissions = perms
	stub.OtherAccess = access
	stub.OtherGlobal = globalOrDefault(global, other)
	return nil
}

func (h *Hub) RemovePair(ctx context.Context, caller identity.Identity, target string) error {
	if target == "" || target == caller.UID {
		return nil
	}

	pair, err := h.repo.GetPair(ctx, caller.UID, target)
	if err != nil {
		return fmt.Errorf("failed to get pair: %w", err)
	}
	if pair == nil {
		return nil
	}
	reverse, err := h.repo.GetPair(ctx, target, caller.UID)
	if err != nil {
		return fmt.Errorf("failed to get pair: %w", err)
	}

	err = h.repo.DeletePair(ctx, caller.UID, target)
	if errors.Is(err, repository.ErrPairNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete pair: %w", err)
	}
	h.invalidatePairs(ctx, caller.UID, target)

	other, err := h.userData(ctx, target)
	if err != nil {
		return err
	}
	h.pusher.SendToUser(ctx, caller.UID, event.UserRemovePairConfirmed, event.PairRef{User: other})

	if reverse == nil {
		return nil
	}

	self, err := h.userData(ctx, caller.UID)
	if err != nil {
		return err
	}
	h.pusher.SendToUser(ctx, target, event.PairIndividualStatusChanged,
		event.StatusChange{User: self, Status: event.OneSided})
	h.pusher.SendToUser(ctx, target, event.UserWentOffline, event.PairRef{User: self})
	return nil
}

// GetPairs lists every edge the caller has added.
func (h *Hub) GetPairs(ctx context.Context, caller identity.Identity) ([]event.PairStub, error) {
	own, err := h.repo.ListPairs(ctx, caller.UID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pairs: %w", err)
	}
	if len(own) == 0 {
		return []event.PairStub{}, nil
	}

	back, err := h.repo.ListPairedBy(ctx, caller.UID)
	if err != nil {
		return nil, fmt.Errorf("failed to list paired by: %w", err)
	}
	addedBack := make(map[string]bool, len(back))
	for _, p := range back {
		addedBack[p.UserUID] = true
	}

	stubs := make([]event.PairStub, 0, len(own))
	for _, p := range own {
		other, err := h.userData(ctx, p.OtherUserUID)
		if err != nil {
			return nil, err
		}
		perms, err := h.repo.GetPairPermissions(ctx, caller.UID, p.OtherUserUID)
		if err != nil {
			return nil, fmt.Errorf("failed to get pair permissions: %w", err)
		}
		access, err := h.repo.GetPairAccess(ctx, caller.UID, p.OtherUserUID)
		if err != nil {
			return nil, fmt.Errorf("failed to get pair access: %w", err)
		}

		stub := event.PairStub{
			User:           other,
			Status:         pairStatus(addedBack[p.OtherUserUID]),
			OwnPermissions: perms,
			OwnAccess:      access,
		}
		if addedBack[p.OtherUserUID] {
			if err := h.fillOtherSide(ctx, &stub, caller.UID, p.OtherUserUID); err != nil {
				return nil, err
			}
		}
		stubs = append(stubs, stub)
	}
	return stubs, nil
}

// GetOnlinePairs returns the caller's online bidirectional pairs and, when
// configured, announces the caller to them again.
func (h *Hub) GetOnlinePairs(ctx context.Context, caller identity.Identity) ([]event.OnlineUser, error) {
	pairs, err := h.bidirectionalPairs(ctx, caller.UID)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return []event.OnlineUser{}, nil
	}

	uids := keys(pairs)
	online, err := h.dir.LookupMany(ctx, uids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve presence: %w", err)
	}

	result := make([]event.OnlineUser, 0, len(online))
	for _, uid := range uids {
		session, ok := online[uid]
		if !ok {
			continue
		}
		user, err := h.userData(ctx, uid)
		if err != nil {
			return nil, err
		}
		result = append(result, event.OnlineUser{User: user, Session: session})
	}

	if h.cfg.ReannounceOnPoll && len(result) > 0 {
		self, err := h.userData(ctx, caller.UID)
		if err != nil {
			return nil, err
		}
		if _, err := h.router.Deliver(ctx, caller.UID, uids, nil,
			broadcast.Static(event.UserWentOnline, event.OnlineUser{User: self, Session: caller.Session})); err != nil {
			h.logger.Warnw("failed to re-announce online", "uid", caller.UID, "error", err)
		}
	}
	return result, nil
}

// PushCharacterData forwards data to the requested recipients that are
// bidirectional pairs of the caller. It returns the uids reached.
func (h *Hub) PushCharacterData(ctx context.Context, caller identity.Identity, recipients []string, data json.RawMessage) ([]string, error) {
	if len(recipients) == 0 {
		return []string{}, nil
	}

	pairs, err := h.bidirectionalPairs(ctx, caller.UID)
	if err != nil {
		return nil, err
	}
	// A recipient missing from the cache may have paired on another instance.
	for _, uid := range recipients {
		if _, ok := pairs[uid]; !ok && uid != caller.UID {
			if pairs, err = h.loadBidirectional(ctx, caller.UID); err != nil {
				return nil, err
			}
			h.pairsMu.Lock()
			if _, cached := h.pairs[caller.UID]; cached {
				h.pairs[caller.UID] = pairs
			}
			h.pairsMu.Unlock()
			break
		}
	}

	var allowed []string
	for _, uid := range recipients {
		if _, ok := pairs[uid]; ok {
			allowed = append(allowed, uid)
		}
	}
	if len(allowed) == 0 {
		return []string{}, nil
	}

	self, err := h.userData(ctx, caller.UID)
	if err != nil {
		return nil, err
	}
	reached, err := h.router.Deliver(ctx, caller.UID, allowed, nil,
		broadcast.Static(event.ReceiveCharacterData, event.CharacterData{Sender: self, Data: data}))
	if err != nil {
		return nil, err
	}
	if reached == nil {
		reached = []string{}
	}
	return reached, nil
}
