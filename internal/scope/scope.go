// Package scope resolves the effective tenant context of a request. The
// session is an explicit value passed into the data-access layer — never
// ambient state — so tenancy decisions stay testable in isolation.
package scope

import "github.com/strandshq/strands-api/internal/utils"

// Role is the authenticated actor's role.
type Role string

const (
	RoleManager    Role = "manager"
	RoleSuperAdmin Role = "super_admin"
)

// Session identifies the authenticated actor. SalonID is empty for the
// super-admin.
type Session struct {
	ActorID string
	Email   string
	Role    Role
	SalonID string
}

// Kind says whether a scope reads one tenant or aggregates across all.
type Kind string

const (
	KindSalon     Kind = "salon"
	KindAggregate Kind = "aggregate"
)

// Scope is the resolved tenant context. Impersonated marks a super-admin
// mirroring a specific salon; callers surface it so the UI can show the exit
// affordance.
type Scope struct {
	Kind         Kind
	SalonID      string
	Impersonated bool
}

// CanWrite reports whether mutations are allowed in this scope. Aggregate
// views are read-only analytics.
func (s Scope) CanWrite() bool { return s.Kind == KindSalon }

// Resolve computes the scope for a session and an optional salonId override
// from the request. Rules:
//
//   - manager without override (or naming their own salon): their own salon.
//   - manager naming a foreign salon: refused. Tenant selection is enforced
//     here, server-side, not trusted from the client.
//   - super-admin without override: aggregate (collection-group reads).
//   - super-admin with override: that salon, marked impersonated.
//
// Resolution is re-evaluated per request; nothing is cached across views.
func Resolve(sess Session, salonIDParam string) (Scope, error) {
	switch sess.Role {
	case RoleManager:
		if sess.SalonID == "" {
			return Scope{}, utils.ErrTenantForbidden
		}
		if salonIDParam != "" && salonIDParam != sess.SalonID {
			return Scope{}, utils.ErrTenantForbidden
		}
		return Scope{Kind: KindSalon, SalonID: sess.SalonID}, nil

	case RoleSuperAdmin:
		if salonIDParam == "" {
			return Scope{Kind: KindAggregate}, nil
		}
		return Scope{Kind: KindSalon, SalonID: salonIDParam, Impersonated: true}, nil

	default:
		return Scope{}, utils.ErrTenantForbidden
	}
}
