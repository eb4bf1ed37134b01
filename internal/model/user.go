// Package model defines domain entities for the application.
package model

import (
	"encoding/json"
	"time"
)

// Plan represents a subscription tier.
type Plan string

const (
	PlanFree             Plan = "free"
	PlanPremium          Plan = "premium"
	PlanPremiumQuarterly Plan = "premium_quarterly"
	PlanPremiumAnnual    Plan = "premium_annual"
	PlanEnterprise       Plan = "enterprise"
)

// IsValid checks if the plan is a known tier.
func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanPremium, PlanPremiumQuarterly, PlanPremiumAnnual, PlanEnterprise:
		return true
	}
	return false
}

// IsPaid returns true for paying tiers.
func (p Plan) IsPaid() bool {
	return p.IsValid() && p != PlanFree
}

// Role represents an account's privilege level.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// IsValid checks if the role is known.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin || r == RoleSuperAdmin
}

// CanAdminister returns true if the role grants access to admin endpoints.
func (r Role) CanAdminister() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// TrialStatus describes a time-limited trial attached to an account.
type TrialStatus struct {
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// AccessGrant is the canonical form of the API's "access" field.
// The server emits it in three shapes: a single permission string, a list
// of permission strings, or a trial-status object. UnmarshalJSON folds all
// of them into this one struct; unrecognized shapes degrade to an empty grant.
type AccessGrant struct {
	Permissions []string     `json:"permissions,omitempty"`
	Trial       *TrialStatus `json:"trial,omitempty"`
}

// accessObject covers both the canonical object form and the bare
// trial-status object some responses carry.
type accessObject struct {
	Permissions []string     `json:"permissions"`
	Trial       *TrialStatus `json:"trial"`
	Active      *bool        `json:"active"`
	ExpiresAt   *time.Time   `json:"expires_at"`
}

// UnmarshalJSON normalizes the three wire shapes of the access field.
func (a *AccessGrant) UnmarshalJSON(data []byte) error {
	*a = AccessGrant{}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single != "" {
			a.Permissions = []string{single}
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		a.Permissions = list
		return nil
	}

	var obj accessObject
	if err := json.Unmarshal(data, &obj); err == nil {
		a.Permissions = obj.Permissions
		switch {
		case obj.Trial != nil:
			a.Trial = obj.Trial
		case obj.Active != nil:
			a.Trial = &TrialStatus{Active: *obj.Active, ExpiresAt: obj.ExpiresAt}
		}
		return nil
	}

	// Unrecognized shape: empty grant, not a failed login.
	return nil
}

// HasPermission checks if the grant carries the given permission string.
func (a AccessGrant) HasPermission(perm string) bool {
	for _, p := range a.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// IsEmpty returns true if the grant carries no permissions and no trial.
func (a AccessGrant) IsEmpty() bool {
	return len(a.Permissions) == 0 && a.Trial == nil
}

// User represents an account as returned by the API.
type User struct {
	ID     string      `json:"id"`
	Email  string      `json:"email"`
	Name   string      `json:"name"`
	Plan   Plan        `json:"plan"`
	Role   Role        `json:"role,omitempty"`
	Access AccessGrant `json:"access,omitempty"`
}

// EffectiveRole returns the role, defaulting to a regular user when the
// server omitted the field.
func (u User) EffectiveRole() Role {
	if u.Role == "" {
		return RoleUser
	}
	return u.Role
}
