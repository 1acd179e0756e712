package kernel

import (
	"fmt"
	"strings"

	"lastmile/internal/pkg/errs"
)

// Role is the kind of actor issuing a request. RoleSystem is used by the
// pickup aggregator and scheduled jobs.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleShop   Role = "shop"
	RoleDriver Role = "driver"
	RoleSystem Role = "system"
)

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleShop, RoleDriver, RoleSystem:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

// In reports whether r is one of roles.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
