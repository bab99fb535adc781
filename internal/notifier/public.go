package notifier

import (
	"context"
)

//go:generate mockgen -source=public.go -destination=mock_public.go -package=notifier

// Route addresses one user's connection. An empty ConnID matches whichever
// connection the receiving instance holds.
type Route struct {
	UID    string `cbor:"uid"`
	ConnID string `cbor:"conn,omitempty"`
}

// Notifier relays encoded push frames to the hub instances holding the targets.
type Notifier interface {
	Publish(ctx context.Context, targets []Route, frame []byte) error
}

// Envelope is what travels on the backplane topic.
type Envelope struct {
	Origin  string  `cbor:"origin"`
	Targets []Route `cbor:"targets"`
	Frame   []byte  `cbor:"frame"`
}

// DeliverFunc hands a received frame to whichever targets are connected locally.
type DeliverFunc func(targets []Route, frame []byte)
