// authz/model.go
package authz

import (
	"strings"

	"github.com/warden-authz/warden/model"
)

// Requirement is a cross-cutting predicate attached to an action. Actions
// tagged with a requirement are granted by the predicate rather than by the
// per-role action sets.
type Requirement int

const (
	RequireNone Requirement = iota
	RequireManager
	RequireInternalManager
	RequireAnalyst
	RequireAdmin
)

// Satisfied evaluates the requirement against the subject and role of a
// matched policy. It is total: unknown requirements deny.
//
// The internal-manager rule is intentionally asymmetric: the admin role
// passes unconditionally, while customer-side managers pass only when the
// subject carries the staff domain suffix.
func (r Requirement) Satisfied(subject, role, staffSuffix string) bool {
	switch r {
	case RequireManager:
		return role == RoleAdmin || role == RoleCustomerAdmin
	case RequireInternalManager:
		if role == RoleAdmin {
			return true
		}
		return (role == RoleCustomer || role == RoleCustomerAdmin) &&
			staffSuffix != "" && strings.HasSuffix(subject, staffSuffix)
	case RequireAnalyst:
		return role == RoleAdmin || role == RoleAnalyst
	case RequireAdmin:
		return role == RoleAdmin
	default:
		return false
	}
}

const (
	RoleAdmin         = "admin"
	RoleAnalyst       = "analyst"
	RoleCustomer      = "customer"
	RoleCustomerAdmin = "customeradmin"
	RoleHacker        = "hacker"
)

func actionSet(actions ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(actions))
	for _, a := range actions {
		set[a] = struct{}{}
	}
	return set
}

// Immutable role-to-action tables, partitioned by level. Loaded once at
// process start; never mutated afterwards.
var (
	userActions = map[string]map[string]struct{}{
		RoleAdmin: actionSet(
			"list_subjects",
			"create_group",
			"download_platform_report",
			"view_self",
			"edit_self",
		),
		RoleAnalyst: actionSet(
			"view_self",
			"edit_self",
			"list_assigned_groups",
		),
		RoleHacker: actionSet(
			"view_self",
			"edit_self",
			"list_assigned_groups",
			"submit_drafts",
		),
		RoleCustomer: actionSet(
			"view_self",
			"edit_self",
			"create_group",
		),
	}

	groupActions = map[string]map[string]struct{}{
		RoleAdmin: actionSet(
			"view_findings",
			"view_analytics",
			"add_comment",
			"request_reattack",
			"upload_evidence",
			"edit_group_info",
		),
		RoleCustomerAdmin: actionSet(
			"view_findings",
			"view_analytics",
			"add_comment",
			"request_reattack",
			"edit_group_info",
		),
		RoleCustomer: actionSet(
			"view_findings",
			"view_analytics",
			"add_comment",
			"request_reattack",
		),
		RoleAnalyst: actionSet(
			"view_findings",
			"view_analytics",
			"add_comment",
			"upload_evidence",
		),
	}

	organizationActions = map[string]map[string]struct{}{
		RoleAdmin: actionSet(
			"view_org_analytics",
			"edit_org_policies",
			"manage_org_groups",
		),
		RoleCustomerAdmin: actionSet(
			"view_org_analytics",
			"edit_org_policies",
			"manage_org_groups",
		),
		RoleCustomer: actionSet(
			"view_org_analytics",
		),
	}

	// requirements tags actions whose access rule cuts across roles.
	requirements = map[string]Requirement{
		"manage_access":       RequireManager,
		"manage_org_access":   RequireManager,
		"edit_internal_roots": RequireInternalManager,
		"approve_draft":       RequireAnalyst,
		"verify_finding":      RequireAnalyst,
		"remove_group":        RequireAdmin,
		"remove_organization": RequireAdmin,
	}
)

func tableForLevel(level model.Level) map[string]map[string]struct{} {
	switch level {
	case model.LevelUser:
		return userActions
	case model.LevelGroup:
		return groupActions
	case model.LevelOrganization:
		return organizationActions
	default:
		return nil
	}
}

// ActionsForRole returns the set of actions role may perform at level.
// The returned map must be treated as read-only.
func ActionsForRole(level model.Level, role string) map[string]struct{} {
	if table := tableForLevel(level); table != nil {
		return table[role]
	}
	return nil
}

// RolesForLevel enumerates the role names that are valid at level. Grant
// requests for roles outside this set are rejected.
func RolesForLevel(level model.Level) []string {
	table := tableForLevel(level)
	roles := make([]string, 0, len(table))
	for role := range table {
		roles = append(roles, role)
	}
	return roles
}

// ValidRole reports whether role is grantable at level.
func ValidRole(level model.Level, role string) bool {
	table := tableForLevel(level)
	_, ok := table[role]
	return ok
}

// RequirementFor returns the cross-cutting requirement tagged on action,
// or RequireNone when the action has no special rule.
func RequirementFor(action string) Requirement {
	return requirements[action]
}
