// Package router maps the navigation state to the page the shell shows.
// The menu engine only exposes the active id and the profile flag; which page
// an id means is decided here.
package router

import (
	"github.com/b/plouto/pkg/menu"
	"github.com/b/plouto/pkg/session"
)

// Well-known route ids outside the registry.
const (
	OrderDemoID    = "demo-order"
	NotFoundDemoID = "demo-404"
	// BrokenLinkID is where the not-found page's Back button leads. It is
	// deliberately absent from the registry.
	BrokenLinkID = "m8"
)

type Page int

const (
	PageLogin Page = iota
	PageDashboard
	PageProfile
	PageOrderDemo
	PageNotFound
	PageOffline
	PagePlaceholder
)

var pageNames = map[Page]string{
	PageLogin:       "login",
	PageDashboard:   "dashboard",
	PageProfile:     "profile",
	PageOrderDemo:   "order_demo",
	PageNotFound:    "not_found",
	PageOffline:     "offline",
	PagePlaceholder: "placeholder",
}

func (p Page) String() string {
	if s, ok := pageNames[p]; ok {
		return s
	}
	return "unknown"
}

var dashboardIDs = map[string]bool{"m0": true, "m1": true}

// Route is the page to mount plus the node it is about, if any.
type Route struct {
	Page Page
	Node menu.Node
	// Fallback is set when the active id did not resolve and Node is the
	// registry's first root instead.
	Fallback bool
}

// Resolve looks ids up in the full registry, not the role-filtered roots, so
// a deep link outside the current role still renders.
func Resolve(registry menu.Forest, snap session.Snapshot) Route {
	if snap.State != session.Authenticated {
		return Route{Page: PageLogin}
	}
	if snap.ShowProfile {
		return Route{Page: PageProfile}
	}
	switch snap.ActiveMenuID {
	case NotFoundDemoID:
		return Route{Page: PageNotFound}
	case OrderDemoID:
		return Route{Page: PageOrderDemo}
	}

	n, found := menu.Resolve(registry, snap.ActiveMenuID)
	r := Route{Node: n, Fallback: !found}
	switch {
	case n.ID == "":
		r.Page = PagePlaceholder
	case !n.Online || menu.UnderOffline(registry, n.ID):
		r.Page = PageOffline
	case dashboardIDs[n.ID]:
		r.Page = PageDashboard
	default:
		r.Page = PagePlaceholder
	}
	return r
}
