package credential

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no credential exists for the given id.
	ErrNotFound = errors.New("credential not found")
	// ErrAlreadyExists is returned when creating a credential whose id is taken.
	ErrAlreadyExists = errors.New("credential already exists")
)

// Key is the provider-specific token blob stored alongside a credential.
// ExpiryDate must reflect the true expiry of AccessToken at all times the
// credential is used; any mutation has to be written back to the store
// before the new token is relied upon.
type Key struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiryDate   int64  `json:"expiry_date"` // seconds since epoch
}

// Expired reports whether the access token is expired at the given time.
func (k Key) Expired(now time.Time) bool {
	return k.ExpiryDate < now.Unix()
}

// Credential is one user's grant to a remote calendar provider.
type Credential struct {
	ID        string // uuid
	Type      string // integration type tag, e.g. calendar.TypeOffice365
	Key       Key
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store persists credentials. Update must be atomic per credential id.
type Store interface {
	Get(ctx context.Context, id string) (*Credential, error)
	Create(ctx context.Context, cred *Credential) error
	Update(ctx context.Context, id string, key Key) error
	List(ctx context.Context) ([]Credential, error)
	Delete(ctx context.Context, id string) error
}
