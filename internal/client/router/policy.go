// Package router decides which views the current identity may enter and
// where it is sent instead.
package router

import (
	"strings"

	"github.com/teachreach/marketplace/internal/client/model"
)

type View string

const (
	Home           View = "home"
	Services       View = "services"
	ServiceDetail  View = "service-detail"
	Reviews        View = "reviews"
	Login          View = "login"
	Register       View = "register"
	Settings       View = "settings"
	Dashboard      View = "dashboard"
	AdminDashboard View = "admin-dashboard"
)

type access int

const (
	public access = iota
	authenticated
	adminOnly
)

var policy = map[View]access{
	Home:           public,
	Services:       public,
	ServiceDetail:  public,
	Reviews:        public,
	Login:          public,
	Register:       public,
	Settings:       authenticated,
	Dashboard:      authenticated,
	AdminDashboard: adminOnly,
}

var paths = map[string]View{
	"":          Home,
	"services":  Services,
	"reviews":   Reviews,
	"login":     Login,
	"register":  Register,
	"settings":  Settings,
	"dashboard": Dashboard,
	"admin":     AdminDashboard,
}

// CanEnter reports whether id may open v. A nil id is an anonymous visitor.
// Unknown views are never enterable.
func CanEnter(v View, id *model.Identity) bool {
	a, ok := policy[v]
	if !ok {
		return false
	}
	switch a {
	case public:
		return true
	case authenticated:
		return id != nil
	default:
		return id.IsAdmin()
	}
}

// Resolve returns v when it may be entered, otherwise the fallback: login
// for anonymous visitors, the client dashboard for signed-in non-admins and
// home for unknown views.
func Resolve(v View, id *model.Identity) View {
	if _, known := policy[v]; !known {
		return Home
	}
	if CanEnter(v, id) {
		return v
	}
	if id == nil {
		return Login
	}
	return Dashboard
}

// Landing is where an identity goes right after signing in.
func Landing(id *model.Identity) View {
	switch {
	case id == nil:
		return Home
	case id.IsAdmin():
		return AdminDashboard
	default:
		return Dashboard
	}
}

// Parse maps a path such as "/services/svc1" to a view and its parameter.
// Unknown paths map to home.
func Parse(path string) (View, string) {
	parts := strings.SplitN(strings.Trim(path, "/"), "/", 2)
	if parts[0] == "services" && len(parts) == 2 && parts[1] != "" {
		return ServiceDetail, parts[1]
	}
	if len(parts) == 1 {
		if v, ok := paths[parts[0]]; ok {
			return v, ""
		}
	}
	return Home, ""
}
