// Package router maps view paths to named screens and enforces the
// authentication guard. It is a pure routing table: resolving a path never
// performs IO, it only reports which screen to show or where to redirect.
package router

import (
	"net/url"
	"strings"
)

// Route names. Screens are addressed by name everywhere outside this
// package.
const (
	RouteHome           = "home"
	RouteMaterials      = "materials"
	RouteMaterialDetail = "material-detail"
	RouteUpload         = "upload"
	RouteProfile        = "profile"
	RouteLogin          = "login"
	RouteRegister       = "register"
	RouteNotFound       = "not-found"
)

// Route is one entry of the routing table. Pattern segments starting with
// ':' capture a path parameter under that name.
type Route struct {
	Name         string
	Pattern      string
	Title        string
	RequiresAuth bool
}

// Match is the result of resolving a path: the screen to show, any
// captured parameters, and, when the auth guard fired, the login redirect
// to take instead.
type Match struct {
	Route  Route
	Params map[string]string
	// RedirectTo is non-empty when the guard rejected the navigation.
	// It carries the original path so login can return the user there.
	RedirectTo string
}

// Router resolves paths against an ordered routing table.
type Router struct {
	routes   []Route
	notFound Route
}

// New returns a router with the application's routing table.
func New() *Router {
	return &Router{
		routes: []Route{
			{Name: RouteHome, Pattern: "/", Title: "Home"},
			{Name: RouteMaterials, Pattern: "/materials", Title: "Materials"},
			{Name: RouteMaterialDetail, Pattern: "/materials/:id", Title: "Material Detail"},
			{Name: RouteUpload, Pattern: "/upload", Title: "Upload", RequiresAuth: true},
			{Name: RouteProfile, Pattern: "/profile", Title: "Profile", RequiresAuth: true},
			{Name: RouteLogin, Pattern: "/login", Title: "Login"},
			{Name: RouteRegister, Pattern: "/register", Title: "Register"},
		},
		notFound: Route{Name: RouteNotFound, Pattern: "/:pathMatch(.*)*", Title: "Not Found"},
	}
}

// Resolve matches a path against the table. Unknown paths resolve to the
// not-found screen; guarded routes resolve to a login redirect when the
// caller is not authenticated.
func (r *Router) Resolve(path string, authenticated bool) Match {
	clean := path
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}

	for _, route := range r.routes {
		params, ok := matchPattern(route.Pattern, clean)
		if !ok {
			continue
		}
		if route.RequiresAuth && !authenticated {
			return Match{Route: route, Params: params, RedirectTo: LoginRedirect(path)}
		}
		return Match{Route: route, Params: params}
	}
	return Match{Route: r.notFound, Params: map[string]string{}}
}

// LoginRedirect builds the login path carrying the originally requested
// path so a successful login can navigate back.
func LoginRedirect(original string) string {
	q := url.Values{}
	q.Set("redirect", original)
	return "/login?" + q.Encode()
}

// RedirectTarget extracts the post-login target from a login path, or "/"
// when none was carried.
func RedirectTarget(loginPath string) string {
	u, err := url.Parse(loginPath)
	if err != nil {
		return "/"
	}
	if target := u.Query().Get("redirect"); target != "" {
		return target
	}
	return "/"
}

// matchPattern matches a path against a pattern segment by segment,
// capturing ':name' parameters. Trailing slashes are insignificant.
func matchPattern(pattern, path string) (map[string]string, bool) {
	ps := splitPath(pattern)
	ss := splitPath(path)
	if len(ps) != len(ss) {
		return nil, false
	}

	params := map[string]string{}
	for i, seg := range ps {
		if strings.HasPrefix(seg, ":") {
			if ss[i] == "" {
				return nil, false
			}
			params[seg[1:]] = ss[i]
			continue
		}
		if seg != ss[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
