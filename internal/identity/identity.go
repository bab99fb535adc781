package identity

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrUnauthenticated = errors.New("unauthenticated")

// sessionNamespace seeds derived session identities for tokens without a jti.
var sessionNamespace = uuid.MustParse("6f1d3f6c-2b7a-4f0e-9a54-3c1b8f0d2e71")

type Identity struct {
	UID     string
	Session string
	Region  string
}

// Claims is the token body issued by the login service.
type Claims struct {
	UID    string `json:"uid,omitempty"`
	Region string `json:"region,omitempty"`
	jwt.RegisteredClaims
}

type Resolver struct {
	secret []byte
}

func NewResolver(secret string) *Resolver {
	return &Resolver{secret: []byte(secret)}
}

// Resolve validates an HS256 token and extracts the caller identity.
func (r *Resolver) Resolve(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrUnauthenticated
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return r.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	uid := claims.UID
	if uid == "" {
		uid = claims.Subject
	}
	if uid == "" {
		return Identity{}, ErrUnauthenticated
	}

	return Identity{
		UID:     uid,
		Session: sessionOf(uid, claims),
		Region:  claims.Region,
	}, nil
}

func sessionOf(uid string, claims *Claims) string {
	if claims.ID != "" {
		return claims.ID
	}
	var issued int64
	if claims.IssuedAt != nil {
		issued = claims.IssuedAt.Unix()
	}
	return uuid.NewSHA1(sessionNamespace, []byte(uid+":"+strconv.FormatInt(issued, 10))).String()
}

type contextKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
