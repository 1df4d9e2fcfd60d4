package domain

// Canonical application paths the routing gate can land a user on.
const (
	PathHome             = "/"
	PathAuth             = "/auth"
	PathProfileSetup     = "/profile-setup"
	PathOwnerDashboard   = "/pet-owner"
	PathSitterDashboard  = "/pet-sitter-dashboard"
	PathShelterDashboard = "/pet-shelter-dashboard"
	PathAdminAuth        = "/admin/auth"
)

// RouteAction is the outcome kind of a gate decision.
type RouteAction string

const (
	ActionStay     RouteAction = "stay"
	ActionRedirect RouteAction = "redirect"
)

// RouteDecision is the result of evaluating the profile-completeness gate.
// Path is only meaningful when Action is ActionRedirect.
type RouteDecision struct {
	Action RouteAction `json:"action"`
	Path   string      `json:"path,omitempty"`
}

func stay() RouteDecision {
	return RouteDecision{Action: ActionStay}
}

// redirect sends the user to target unless they are already on it. The
// redirect targets (auth, profile setup) render unguarded, so a user already
// there is told to stay; a client following decisions can never loop.
func redirect(currentPath, target string) RouteDecision {
	if currentPath == target {
		return stay()
	}
	return RouteDecision{Action: ActionRedirect, Path: target}
}

// Decide is the profile-completeness gate: the single source of truth for
// where a user belongs given their identity, profile, and the path they are
// on. Both the post-login redirect and the route guard evaluate it, so the
// two call sites cannot drift.
//
// The rules run strictly in order; the first match wins. Note the owner rule
// only covers the sitter dashboard: there is no mirror rule sending a sitter
// off /pet-owner (see DESIGN.md).
func Decide(signedIn bool, profile *Profile, roleProfileExists bool, currentPath string) RouteDecision {
	if !signedIn {
		return redirect(currentPath, PathAuth)
	}
	if profile == nil {
		return redirect(currentPath, PathProfileSetup)
	}
	if !profile.Complete() {
		return redirect(currentPath, PathProfileSetup)
	}
	if profile.UserType == UserTypePetOwner && currentPath == PathSitterDashboard {
		return redirect(currentPath, PathOwnerDashboard)
	}
	if profile.UserType == UserTypePetSitter && currentPath != PathSitterDashboard && !roleProfileExists {
		return redirect(currentPath, PathProfileSetup)
	}
	if profile.UserType == UserTypePetShelter && !roleProfileExists {
		return redirect(currentPath, PathProfileSetup)
	}
	return stay()
}

// DashboardPath maps a completed profile to its canonical dashboard. Sitter
// and shelter dashboards additionally require the role profile row to exist;
// without it the user is sent back to profile setup. Unrecognized roles fall
// back to the home page.
func DashboardPath(profile *Profile, roleProfileExists bool) string {
	if profile == nil {
		return PathProfileSetup
	}
	switch profile.UserType {
	case UserTypePetOwner:
		return PathOwnerDashboard
	case UserTypePetSitter:
		if !roleProfileExists {
			return PathProfileSetup
		}
		return PathSitterDashboard
	case UserTypePetShelter:
		if !roleProfileExists {
			return PathProfileSetup
		}
		return PathShelterDashboard
	default:
		return PathHome
	}
}
