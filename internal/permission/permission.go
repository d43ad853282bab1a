// Package permission parses "action:entity:access[,access...]" strings into typed triples
// and matches them against stored grants.
package permission

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"

	AccessOwn = "own"
	AccessAny = "any"
)

var (
	validActions = []string{ActionCreate, ActionRead, ActionUpdate, ActionDelete}
	validAccess  = []string{AccessOwn, AccessAny}
)

var ErrMalformed = errors.New("malformed permission string")

// Permission is a parsed requirement. A nil Access means any stored access level satisfies it.
type Permission struct {
	Action string   `json:"action"`
	Entity string   `json:"entity"`
	Access []string `json:"access,omitempty"`
}

// Grant is a single stored permission row attached to a role.
type Grant struct {
	Action string
	Entity string
	Access string
}

func Parse(s string) (Permission, error) {
	if strings.TrimSpace(s) == "" {
		return Permission{}, fmt.Errorf("%w: empty", ErrMalformed)
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Permission{}, fmt.Errorf("%w: %q must be action:entity[:access]", ErrMalformed, s)
	}

	p := Permission{Action: parts[0], Entity: parts[1]}
	if !slices.Contains(validActions, p.Action) {
		return Permission{}, fmt.Errorf("%w: unknown action %q", ErrMalformed, p.Action)
	}
	if p.Entity == "" || strings.TrimSpace(p.Entity) != p.Entity {
		return Permission{}, fmt.Errorf("%w: invalid entity %q", ErrMalformed, p.Entity)
	}

	if len(parts) == 3 {
		for _, a := range strings.Split(parts[2], ",") {
			if !slices.Contains(validAccess, a) {
				return Permission{}, fmt.Errorf("%w: unknown access %q", ErrMalformed, a)
			}
			p.Access = append(p.Access, a)
		}
	}

	return p, nil
}

// MustParse is for permission literals declared in code. A malformed literal is a
// programming error and panics at the call site that declares it.
func MustParse(s string) Permission {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Permission) String() string {
	s := p.Action + ":" + p.Entity
	if len(p.Access) > 0 {
		s += ":" + strings.Join(p.Access, ",")
	}
	return s
}

// Allows reports whether a stored grant satisfies the requirement.
func (p Permission) Allows(g Grant) bool {
	if g.Action != p.Action || g.Entity != p.Entity {
		return false
	}
	if p.Access == nil {
		return true
	}
	return slices.Contains(p.Access, g.Access)
}

// AllowedByAny reports whether at least one grant satisfies the requirement.
func (p Permission) AllowedByAny(grants []Grant) bool {
	for _, g := range grants {
		if p.Allows(g) {
			return true
		}
	}
	return false
}
