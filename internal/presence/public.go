package presence

import (
	"context"
)

//go:generate mockgen -source=public.go -destination=mock_public.go -package=presence

// Entry is what the directory holds for an online user: the login session and
// the connection currently serving it. A reconnect with the same token keeps
// the session but gets a new ConnID.
type Entry struct {
	Session string `cbor:"session"`
	ConnID  string `cbor:"conn"`
}

// Directory maps a user id to the live connection serving it.
// Lookups that find nothing return empty values and no error.
type Directory interface {
	SetOnline(ctx context.Context, uid string, entry Entry) error
	ClearOnline(ctx context.Context, uid string) error
	// ClearSession removes the entry only while it still holds exactly entry.
	ClearSession(ctx context.Context, uid string, entry Entry) (bool, error)

	Lookup(ctx context.Context, uid string) (string, error)
	// LookupMany returns only the online uids, keyed to their session.
	LookupMany(ctx context.Context, uids []string) (map[string]string, error)
	// LookupEntries is LookupMany with the connection ids kept.
	LookupEntries(ctx context.Context, uids []string) (map[string]Entry, error)
	CountOnline(ctx context.Context, prefix string) (int, error)
}
