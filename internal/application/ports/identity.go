package ports

import (
	"fileshare-api/internal/domain/user"
)

// Identity is the resolved caller of a request. A nil *Identity means
// the caller is anonymous.
type Identity struct {
	UserID   user.ID
	Username string
}

// IdentityVerifier turns a bearer credential into an identity.
// An invalid, expired or malformed credential yields (nil, false),
// never an error: the caller is simply anonymous.
type IdentityVerifier interface {
	Verify(credential string) (*Identity, bool)
}
