package client

import "github.com/ansh-patel-repos/job-listing-portal/internal/model"

const (
	RouteLogin             = "/login"
	RouteSeekerDashboard   = "/seeker/dashboard"
	RouteEmployerDashboard = "/employer/dashboard"
)

type Action int

const (
	Allow Action = iota
	Redirect
)

// Decision is what a guard tells the router to do with a navigation attempt.
type Decision struct {
	Action Action
	Target string
}

func allow() Decision {
	return Decision{Action: Allow}
}

func redirect(target string) Decision {
	return Decision{Action: Redirect, Target: target}
}

// DashboardRoute maps a role to its own dashboard.
func DashboardRoute(role model.Role) string {
	if role == model.RoleEmployer {
		return RouteEmployerDashboard
	}
	return RouteSeekerDashboard
}

// GuardProtected gates a route that requires authentication. A signed-in
// user with the wrong role lands on their own dashboard, not an error page.
func GuardProtected(s Session, requiredRole model.Role) Decision {
	if !s.Authenticated() {
		return redirect(RouteLogin)
	}
	if requiredRole != "" && s.Role != requiredRole {
		return redirect(DashboardRoute(s.Role))
	}
	return allow()
}

// GuardPublicOnly gates login/registration screens: an already signed-in
// user goes straight to their dashboard.
func GuardPublicOnly(s Session) Decision {
	if s.Authenticated() {
		return redirect(DashboardRoute(s.Role))
	}
	return allow()
}
