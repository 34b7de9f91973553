package auth

import (
	"slices"
	"strings"

	apperrors "github.com/Dinesh02121/project-portal/internal/errors"
)

// roleAliases maps every accepted spelling (after canonicalization) to its role.
var roleAliases = map[string]Role{
	"STUDENT":       RoleStudent,
	"FACULTY":       RoleFaculty,
	"TEACHER":       RoleFaculty,
	"COLLEGE":       RoleCollegeAdmin,
	"COLLEGE_ADMIN": RoleCollegeAdmin,
	"ADMIN":         RoleSystemAdmin,
	"SYSTEM_ADMIN":  RoleSystemAdmin,
}

// Normalize canonicalizes a raw role string. Input is trimmed, upper-cased and
// has inner spaces and dashes folded to underscores before the alias lookup.
// Unknown input fails with an unknown_role error; it never defaults to a role.
func Normalize(raw string) (Role, error) {
	key := canonicalKey(raw)
	if role, ok := roleAliases[key]; ok {
		return role, nil
	}
	return "", apperrors.UnknownRole(raw)
}

func canonicalKey(raw string) string {
	key := strings.ToUpper(strings.TrimSpace(raw))
	key = strings.Join(strings.FieldsFunc(key, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\t'
	}), "_")
	return key
}

// RoleSet is an immutable set of canonical roles.
type RoleSet struct {
	roles map[Role]struct{}
}

// NewRoleSet builds a set from canonical roles; invalid roles are ignored.
func NewRoleSet(roles ...Role) RoleSet {
	set := RoleSet{roles: make(map[Role]struct{}, len(roles))}
	for _, r := range roles {
		if r.Valid() {
			set.roles[r] = struct{}{}
		}
	}
	return set
}

// ParseRoleSet normalizes each raw role and fails on the first unknown one.
func ParseRoleSet(raw ...string) (RoleSet, error) {
	roles := make([]Role, 0, len(raw))
	for _, r := range raw {
		role, err := Normalize(r)
		if err != nil {
			return RoleSet{}, err
		}
		roles = append(roles, role)
	}
	return NewRoleSet(roles...), nil
}

// AnyRole is the set of every canonical role.
func AnyRole() RoleSet { return NewRoleSet(AllRoles()...) }

// Contains reports whether r is in the set.
func (s RoleSet) Contains(r Role) bool {
	_, ok := s.roles[r]
	return ok
}

// Len returns the number of roles in the set.
func (s RoleSet) Len() int { return len(s.roles) }

// Roles returns the members in a stable order.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(s.roles))
	for r := range s.roles {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}
