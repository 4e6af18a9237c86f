// authz/enforcer.go
package authz

import "github.com/warden-authz/warden/model"

// Enforcer answers yes/no questions over a subject's resolved policy set.
// It is a per-request value: constructed from the policies the cache
// resolved, consulted, and discarded. It performs no I/O and never errors;
// anything it cannot positively establish is a deny.
type Enforcer struct {
	policies    []model.Policy
	staffSuffix string
}

// NewEnforcer builds an enforcer over an already-resolved policy set.
func NewEnforcer(policies []model.Policy, staffSuffix string) *Enforcer {
	return &Enforcer{policies: policies, staffSuffix: staffSuffix}
}

// Enforce reports whether the policy set permits action against object at
// level. A policy matches when its level equals the queried level and its
// object equals the queried object or the wildcard sentinel. A matched
// policy grants the action either through its role's action set or through
// the action's cross-cutting requirement.
func (e *Enforcer) Enforce(level model.Level, object, action string) bool {
	for _, p := range e.policies {
		if p.Level != level || !p.MatchesObject(object) {
			continue
		}
		if _, ok := ActionsForRole(level, p.Role)[action]; ok {
			return true
		}
		if RequirementFor(action).Satisfied(p.Subject, p.Role, e.staffSuffix) {
			return true
		}
	}
	return false
}
