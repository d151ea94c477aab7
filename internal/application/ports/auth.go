package ports

import (
	"context"

	"fileshare-api/internal/domain/user"
)

type Auth interface {
	Register(ctx context.Context, username, email, password string) (*user.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}
