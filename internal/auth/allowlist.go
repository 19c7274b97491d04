package auth

import (
	"errors"
	"strings"
)

var (
	// ErrUnauthenticated means the operation needs an identity and the caller is anonymous.
	ErrUnauthenticated = errors.New("Unauthorized")
	// ErrForbidden means the caller is identified but not allowed to perform the operation.
	ErrForbidden = errors.New("Forbidden")
)

// AllowList is an immutable set of lower-cased admin e-mail addresses.
type AllowList struct {
	emails map[string]struct{}
}

// ParseAllowList splits a comma-separated list of e-mails, trimming and
// lower-casing entries and dropping empty ones.
func ParseAllowList(s string) AllowList {
	emails := make(map[string]struct{})
	for _, p := range strings.Split(s, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			emails[p] = struct{}{}
		}
	}
	return AllowList{emails: emails}
}

// Allows reports whether email is on the list, ignoring case.
func (a AllowList) Allows(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	_, ok := a.emails[email]
	return ok
}

// Len returns the number of admin addresses.
func (a AllowList) Len() int {
	return len(a.emails)
}

// Gate authorizes privileged operations against an allow-list.
type Gate struct {
	admins AllowList
}

// NewGate creates a gate for the given allow-list.
func NewGate(admins AllowList) *Gate {
	return &Gate{admins: admins}
}

// Authorize returns nil when id is an admin, ErrUnauthenticated when id is
// anonymous and ErrForbidden otherwise.
func (g *Gate) Authorize(id Identity) error {
	if id.IsAnonymous() {
		return ErrUnauthenticated
	}
	if !g.admins.Allows(id.Email) {
		return ErrForbidden
	}
	return nil
}
