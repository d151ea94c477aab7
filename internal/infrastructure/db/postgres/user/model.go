package user

import (
	"time"
)

type (
	User struct {
		ID           uint64
		Username     string
		Email        string
		PasswordHash string

		CreatedAt time.Time
	}
	Users []*User
)
