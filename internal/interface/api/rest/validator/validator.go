package validator

import (
	"errors"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"fileshare-api/internal/domain/file"
	"fileshare-api/internal/interface/api/rest/dto/auth"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt safe
	maxUsernameLen = 32
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_\-\.]+$`)

func ValidateRegister(r auth.RegisterRequest) map[string]string {
	errs := make(map[string]string)

	username := strings.TrimSpace(r.Username)
	email := strings.ToLower(strings.TrimSpace(r.Email))

	if username == "" {
		errs["username"] = "username is required"
	} else if utf8.RuneCountInString(username) > maxUsernameLen {
		errs["username"] = "username must be at most 32 characters"
	} else if !usernameRe.MatchString(username) {
		errs["username"] = "allowed characters: letters, digits, '_', '-', '.'"
	}

	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	}

	if r.Password == "" {
		errs["password"] = "password is required"
	} else if l := utf8.RuneCountInString(r.Password); l < minPasswordLen {
		errs["password"] = "Password must be at least 6 characters long"
	} else if l > maxPasswordLen {
		errs["password"] = "password length must be at most 72 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(r.Username) == "" {
		errs["username"] = "username is required"
	}
	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ParseFileID(s string) (file.ID, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("file_id must be a positive integer")
	}
	return file.ID(id), nil
}

// ParseExpireDays parses the optional expireDays form field. An absent
// field means seven days; explicit 0 means never expire. Range checks
// belong to the lifecycle, only the syntax is validated here.
func ParseExpireDays(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 7, nil
	}
	days, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("expireDays must be an integer")
	}
	return days, nil
}

func ParseIsPublic(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
