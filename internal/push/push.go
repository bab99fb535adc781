package push

import (
	"context"
	"pairing-hub/internal/event"
	"pairing-hub/internal/notifier"
	"pairing-hub/internal/presence"

	"go.uber.org/zap"
)

//go:generate mockgen -source=push.go -destination=mock_push.go -package=push

// Pusher sends events to users wherever they are connected. Delivery is
// fire-and-forget: failures are logged, never returned.
type Pusher interface {
	SendToUser(ctx context.Context, uid string, name string, payload any)
	SendToUsers(ctx context.Context, uids []string, name string, payload any)
}

// LocalSender delivers a frame to a connection held by this process. An empty
// connID matches any held connection.
type LocalSender interface {
	SendLocalTo(uid string, connID string, frame []byte) bool
}

type pusher struct {
	logger *zap.SugaredLogger
	local  LocalSender
	dir    presence.Directory
	notif  notifier.Notifier
}

func NewPusher(logger *zap.SugaredLogger, local LocalSender, dir presence.Directory, notif notifier.Notifier) Pusher {
	return &pusher{logger: logger, local: local, dir: dir, notif: notif}
}

func (p *pusher) SendToUser(ctx context.Context, uid string, name string, payload any) {
	p.SendToUsers(ctx, []string{uid}, name, payload)
}

// SendToUsers routes by the connection the directory names for each user.
// Users without an entry are offline and skipped. When the directory cannot be
// read, routing falls back to whichever connection holds the user.
func (p *pusher) SendToUsers(ctx context.Context, uids []string, name string, payload any) {
	if len(uids) == 0 {
		return
	}

	frame, err := event.Encode(name, payload)
	if err != nil {
		p.logger.Errorw("failed to encode push", "event", name, "error", err)
		return
	}

	entries, err := p.dir.LookupEntries(ctx, uids)
	if err != nil {
		p.logger.Warnw("failed to resolve connections, routing by user", "event", name, "error", err)
		entries = nil
	}

	var remote []notifier.Route
	for _, uid := range uids {
		route := notifier.Route{UID: uid}
		if entries != nil {
			entry, ok := entries[uid]
			if !ok {
				continue
			}
			route.ConnID = entry.ConnID
		}
		if !p.local.SendLocalTo(route.UID, route.ConnID, frame) {
			remote = append(remote, route)
		}
	}

	if len(remote) == 0 {
		return
	}
	if err := p.notif.Publish(ctx, remote, frame); err != nil {
		p.logger.Errorw("failed to publish push", "event", name, "targets", remote, "error", err)
	}
}

// Relay hands frames received from other instances to matching local connections.
func Relay(local LocalSender) notifier.DeliverFunc {
	return func(targets []notifier.Route, frame []byte) {
		for _, route := range targets {
			local.SendLocalTo(route.UID, route.ConnID, frame)
		}
	}
}
