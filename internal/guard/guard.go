package guard

import "studysphere/internal/domain"

// Capability is what a guarded view requires from the caller.
type Capability string

const (
	CapAnyAuthenticated Capability = "any-authenticated"
	CapStudent          Capability = "student"
	CapTutor            Capability = "tutor"
	CapAdmin            Capability = "admin"
)

// State of one guard evaluation. Loading means at least one async input
// has not settled yet: the caller must render nothing and must not
// redirect. Authorized and Denied are terminal for the evaluation; a
// change of identity restarts from Loading.
type State string

const (
	StateLoading    State = "loading"
	StateAuthorized State = "authorized"
	StateDenied     State = "denied"
)

// ForbiddenPath is the fixed view unauthorized requests are sent to.
const ForbiddenPath = "/forbidden"

// Identity is the authenticated actor as resolved by the auth provider.
type Identity struct {
	Email     string
	Name      string
	AvatarURL string
}

// IdentityResult is the settled-or-not outcome of identity resolution.
// A settled result with a nil Identity means "signed out". An error is
// treated the same as signed out.
type IdentityResult struct {
	Settled  bool
	Err      error
	Identity *Identity
}

// RoleResult is the settled-or-not outcome of the role fetch for the
// resolved identity. A fetch error denies; it never defaults to a role.
type RoleResult struct {
	Settled bool
	Err     error
	Role    domain.UserRole
}

// Decision is what the presentation layer acts on. RedirectTo and From
// are only set when the state is Denied.
type Decision struct {
	State      State
	RedirectTo string
	From       string
}

// Evaluate runs one guard evaluation for a view requiring cap.
//
// The inputs settle in strict order: the role fetch is never started
// for an unsettled or absent identity, so an absent identity denies
// without consulting the role at all. While anything the decision
// depends on is still pending the state is Loading.
func Evaluate(identity IdentityResult, role RoleResult, cap Capability, requestedPath string) Decision {
	if !identity.Settled {
		return Decision{State: StateLoading}
	}
	if identity.Err != nil || identity.Identity == nil {
		return deny(requestedPath)
	}
	if !role.Settled {
		return Decision{State: StateLoading}
	}
	if role.Err != nil {
		// Fail closed: a failed role fetch is identical to "no role".
		return deny(requestedPath)
	}
	if !Satisfies(role.Role, cap) {
		return deny(requestedPath)
	}
	return Decision{State: StateAuthorized}
}

// Satisfies reports whether a concrete role grants a capability.
// An unknown role satisfies nothing, including any-authenticated:
// "role unknown" is a distinct state, not a permissive default.
func Satisfies(role domain.UserRole, cap Capability) bool {
	if !domain.ValidRole(role) {
		return false
	}
	switch cap {
	case CapAnyAuthenticated:
		return true
	case CapStudent:
		return role == domain.RoleStudent
	case CapTutor:
		return role == domain.RoleTutor
	case CapAdmin:
		return role == domain.RoleAdmin
	}
	return false
}

func deny(from string) Decision {
	return Decision{
		State:      StateDenied,
		RedirectTo: ForbiddenPath,
		From:       from,
	}
}
