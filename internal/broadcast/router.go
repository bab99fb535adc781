package broadcast

import (
	"context"
	"fmt"
	"pairing-hub/internal/presence"
	"pairing-hub/internal/push"
	"pairing-hub/internal/repository"

	"go.uber.org/zap"
)

// Message is built once per recipient so payloads may differ per viewer.
type Message struct {
	Event   string
	Payload func(recipient string) any
}

// Static is a Message with the same payload for everyone.
func Static(name string, payload any) Message {
	return Message{Event: name, Payload: func(string) any { return payload }}
}

type Router struct {
	logger *zap.SugaredLogger
	dir    presence.Directory
	repo   repository.Repository
	pusher push.Pusher
}

func NewRouter(logger *zap.SugaredLogger, dir presence.Directory, repo repository.Repository, pusher push.Pusher) *Router {
	return &Router{logger: logger, dir: dir, repo: repo, pusher: pusher}
}

// Deliver pushes msg once to every online candidate that holds an unpaused
// grant toward sender, skipping excluded uids. It returns the uids reached.
func (r *Router) Deliver(ctx context.Context, sender string, candidates []string, exclude []string, msg Message) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	online, err := r.dir.LookupMany(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve presence: %w", err)
	}
	if len(online) == 0 {
		return nil, nil
	}

	uids := make([]string, 0, len(online))
	seen := make(map[string]struct{}, len(online))
	for _, uid := range candidates {
		if _, dup := seen[uid]; dup {
			continue
		}
		if _, ok := online[uid]; ok && !contains(exclude, uid) && uid != sender {
			seen[uid] = struct{}{}
			uids = append(uids, uid)
		}
	}
	if len(uids) == 0 {
		return nil, nil
	}

	grants, err := r.repo.ListPermissionsToward(ctx, sender, uids)
	if err != nil {
		return nil, fmt.Errorf("failed to load pair permissions: %w", err)
	}

	var reached []string
	for _, uid := range uids {
		// No grant row means the recipient has not added the sender.
		if grant, ok := grants[uid]; !ok || grant.IsPaused {
			continue
		}
		if r.deliverOne(ctx, uid, msg) {
			reached = append(reached, uid)
		}
	}
	return reached, nil
}

func (r *Router) deliverOne(ctx context.Context, uid string, msg Message) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Errorw("failed to deliver message", "recipient", uid, "event", msg.Event, "panic", rec)
			ok = false
		}
	}()

	r.pusher.SendToUser(ctx, uid, msg.Event, msg.Payload(uid))
	return true
}

func contains(uids []string, uid string) bool {
	for _, u := range uids {
		if u == uid {
			return true
		}
	}
	return false
}
