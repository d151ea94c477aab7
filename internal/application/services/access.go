package services

import (
	"errors"

	"fileshare-api/internal/application/ports"
	"fileshare-api/internal/domain/file"
)

// Terminal authorization errors. Controllers map these to 401/403.
var (
	ErrAuthRequired   = errors.New("Authentication required")
	ErrRestrictedType = errors.New("Access denied. This file type requires authentication.")
	ErrAccessDenied   = errors.New("Access denied")
)

type DenyReason int

const (
	DenyNone DenyReason = iota
	// DenyAuthRequired: the caller is anonymous and the operation needs
	// an identity to even be considered.
	DenyAuthRequired
	// DenyRestrictedType: the original filename carries a restricted
	// extension and the caller is anonymous.
	DenyRestrictedType
	// DenyPrivate: the record is private and the caller is not the owner.
	DenyPrivate
	// DenyNotOwner: only the owner may do this (delete).
	DenyNotOwner
)

type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func allow() Decision            { return Decision{Allowed: true} }
func deny(r DenyReason) Decision { return Decision{Reason: r} }

// Err maps a denial to its terminal error. Allowed decisions map to nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case DenyAuthRequired:
		return ErrAuthRequired
	case DenyRestrictedType:
		return ErrRestrictedType
	default:
		return ErrAccessDenied
	}
}

// Authorize decides whether caller may perform op on record. Pure over
// its inputs: expiration and disk state are the lifecycle's business,
// resolved before this point. The first matching rule decides.
//
// Reads: a restricted extension shuts out anonymous callers whatever
// the visibility flag says; the owner always reads their own records;
// public records are open to everyone else; private records deny
// non-owners, anonymous callers get told to authenticate instead.
func Authorize(record *file.File, caller *ports.Identity, op ports.Operation) Decision {
	switch op {
	case ports.OpView, ports.OpDownload:
		return authorizeRead(record, caller)
	case ports.OpDelete:
		return authorizeDelete(record, caller)
	default:
		return deny(DenyAuthRequired)
	}
}

func authorizeRead(record *file.File, caller *ports.Identity) Decision {
	if record.Restricted() && caller == nil {
		return deny(DenyRestrictedType)
	}
	if caller != nil && caller.UserID == record.OwnerID {
		return allow()
	}
	if record.IsPublic {
		return allow()
	}
	if caller != nil {
		return deny(DenyPrivate)
	}
	return deny(DenyAuthRequired)
}

func authorizeDelete(record *file.File, caller *ports.Identity) Decision {
	if caller == nil {
		return deny(DenyAuthRequired)
	}
	if caller.UserID != record.OwnerID {
		return deny(DenyNotOwner)
	}
	return allow()
}
