package usecase

import (
	"github.com/go-openapi/strfmt"
	"github.com/samber/lo"

	"subaudit/internal/entity"
)

// ScopeKind - which subset of subscriptions a scope matches
type ScopeKind int

const (
	// ScopeNone matches nothing; unknown roles and department heads
	// without departments land here
	ScopeNone ScopeKind = iota
	// ScopeAll matches every subscription
	ScopeAll
	// ScopeOwner matches subscriptions owned by OwnerID
	ScopeOwner
	// ScopeDepartments matches subscriptions sharing a department with DepartmentIDs
	ScopeDepartments
)

// Scope - role-derived visibility predicate over subscriptions. It is an
// abstract filter description; repositories translate it into SQL, and
// Matches applies it in memory. A fetch outside scope reports not-found,
// never forbidden.
type Scope struct {
	Kind          ScopeKind
	OwnerID       strfmt.UUID
	DepartmentIDs []int64
}

// ScopeFor derives the visibility scope from a user's role
func ScopeFor(u *entity.User) Scope {
	if u == nil {
		return Scope{Kind: ScopeNone}
	}
	switch u.Role {
	case entity.RoleAdministrator:
		return Scope{Kind: ScopeAll}
	case entity.RoleSoftwareOwner:
		return Scope{Kind: ScopeOwner, OwnerID: u.ID}
	case entity.RoleDepartmentHead:
		if len(u.DepartmentIDs) == 0 {
			return Scope{Kind: ScopeNone}
		}
		return Scope{Kind: ScopeDepartments, DepartmentIDs: u.DepartmentIDs}
	}
	return Scope{Kind: ScopeNone}
}

// Matches reports whether the subscription is visible under the scope
func (sc Scope) Matches(s *entity.Subscription) bool {
	if s == nil {
		return false
	}
	switch sc.Kind {
	case ScopeAll:
		return true
	case ScopeOwner:
		return s.OwnerID == sc.OwnerID
	case ScopeDepartments:
		return lo.Some(sc.DepartmentIDs, s.DepartmentIDs)
	}
	return false
}
