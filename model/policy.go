// model/policy.go
package model

import (
	"fmt"
	"strings"
	"time"
)

// Level is the scope at which a role assignment applies.
type Level string

const (
	LevelUser         Level = "user"
	LevelGroup        Level = "group"
	LevelOrganization Level = "organization"
)

// ParseLevel converts a wire-format level string into a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelUser:
		return LevelUser, nil
	case LevelGroup:
		return LevelGroup, nil
	case LevelOrganization:
		return LevelOrganization, nil
	default:
		return "", fmt.Errorf("unknown authorization level: %q", s)
	}
}

// Valid reports whether l is one of the three known levels.
func (l Level) Valid() bool {
	return l == LevelUser || l == LevelGroup || l == LevelOrganization
}

const (
	// ObjectSelf is the object used for user-level assignments.
	ObjectSelf = "self"
	// ObjectWildcard matches any object at its level. Platform admins are
	// granted against this sentinel.
	ObjectWildcard = "*"
)

// Policy is a single role assignment: subject holds role over object at level.
// (level, subject, object) is unique per active assignment; granting a new role
// at the same scope replaces the previous one.
type Policy struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Subject   string    `json:"subject"`
	Object    string    `json:"object"`
	Role      string    `json:"role"`
	GrantedAt time.Time `json:"granted_at"`
}

// MatchesObject reports whether the policy governs the given object,
// treating the wildcard sentinel as a match for anything.
func (p Policy) MatchesObject(object string) bool {
	return p.Object == object || p.Object == ObjectWildcard
}
