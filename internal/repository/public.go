package repository

import (
	"context"
	"pairing-hub/internal/repository/model"
)

//go:generate mockgen -source=public.go -destination=mock_public.go -package=repository

// Repository is the pairing store. Lookups that find nothing return nil and no
// error; errors are reserved for infrastructure failures.
type Repository interface {
	GetUser(ctx context.Context, uid string) (*model.User, error)
	GetUserByUIDOrAlias(ctx context.Context, uidOrAlias string) (*model.User, error)
	// UpdateLastLogin creates the user on first sight.
	UpdateLastLogin(ctx context.Context, uid string) error

	GetPair(ctx context.Context, userUID string, otherUID string) (*model.ClientPair, error)
	// ListPairs returns the edges uid has added.
	ListPairs(ctx context.Context, uid string) ([]*model.ClientPair, error)
	// ListPairedBy returns the edges other users have added toward uid.
	ListPairedBy(ctx context.Context, uid string) ([]*model.ClientPair, error)
	// CreatePair stores the edge together with its grant and access rows.
	CreatePair(ctx context.Context, pair *model.ClientPair, perms *model.PairPermissions, access *model.PairAccess) error
	// DeletePair removes the edge together with its grant and access rows.
	DeletePair(ctx context.Context, userUID string, otherUID string) error

	GetPairPermissions(ctx context.Context, userUID string, otherUID string) (*model.PairPermissions, error)
	SavePairPermissions(ctx context.Context, perms *model.PairPermissions) error
	// ListPermissionsToward loads the grant rows each of uids holds toward other.
	ListPermissionsToward(ctx context.Context, other string, uids []string) (map[string]*model.PairPermissions, error)

	GetPairAccess(ctx context.Context, userUID string, otherUID string) (*model.PairAccess, error)
	SavePairAccess(ctx context.Context, access *model.PairAccess) error

	GetGlobalPermissions(ctx context.Context, uid string) (*model.GlobalPermissions, error)
	SaveGlobalPermissions(ctx context.Context, global *model.GlobalPermissions) error

	GetActiveState(ctx context.Context, uid string) (*model.ActiveState, error)
	SaveActiveState(ctx context.Context, state *model.ActiveState) error

	GetProfile(ctx context.Context, uid string) (*model.Profile, error)
	SaveProfile(ctx context.Context, profile *model.Profile) error

	GetReputation(ctx context.Context, uid string) (*model.Reputation, error)
}
