package menu

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyID     = errors.New("menu node has empty id")
	ErrDuplicateID = errors.New("duplicate menu id")
	ErrNoRoles     = errors.New("root menu node admits no role")
)

func buyerVendorForwarder() []Role { return []Role{RoleBuyer, RoleVendor, RoleFreightForwarder} }

func buyerOnly() []Role { return []Role{RoleBuyer} }

// Default returns the built-in portal registry. Each call builds a fresh copy.
func Default() Forest {
	return Forest{
		{ID: "m0", Title: "Home", Icon: "Home", ServiceID: "home", Online: true, Roles: buyerVendorForwarder()},
		{
			ID: "m1", Title: "System", Icon: "Settings", ServiceID: "system", Online: true, Roles: buyerVendorForwarder(),
			Children: []Node{
				{ID: "m1-1", Title: "Role Management", Icon: "Users", ServiceID: "system.role", StatusLabel: "不可用", Roles: buyerOnly()},
				{ID: "m1-2", Title: "User Settings", Icon: "Settings", ServiceID: "system.settings", Online: true, Roles: buyerOnly()},
			},
		},
		{
			ID: "m4", Title: "Store", Icon: "Store", ServiceID: "store", StatusLabel: "离线", Roles: []Role{RoleBuyer, RoleVendor},
			Children: []Node{
				{
					ID: "m4-1", Title: "Products", Icon: "Package", ServiceID: "store-product", Roles: buyerOnly(),
					Children: []Node{
						{ID: "m4-1-1", Title: "Catalog", Icon: "Layers", ServiceID: "store-catalog", Roles: buyerOnly()},
						{ID: "m4-1-2", Title: "Pricing", Icon: "FileText", ServiceID: "store-pricing", Roles: buyerOnly()},
					},
				},
				{ID: "m4-2", Title: "Inventory", Icon: "Box", ServiceID: "store-inventory", Roles: buyerOnly()},
			},
		},
		{
			ID: "m3", Title: "Tracking", Icon: "Truck", ServiceID: "tracking", Online: true, Roles: buyerVendorForwarder(),
			Children: []Node{
				{
					ID: "m3-1", Title: "Ocean Freight", Icon: "Globe", ServiceID: "tracking-ocean", Online: true,
					Roles: []Role{RoleBuyer, RoleFreightForwarder},
					Children: []Node{
						{ID: "m3-1-1", Title: "Vessel Live Map", Icon: "Layers", ServiceID: "tracking-vessel", Online: true, Roles: buyerOnly()},
						{ID: "m3-1-2", Title: "Container Status", Icon: "Box", ServiceID: "tracking-container", Online: true, Roles: buyerOnly()},
						{ID: "m3-1-3", Title: "Port Congestion", Icon: "BarChart3", ServiceID: "tracking-port", StatusLabel: "离线", Roles: buyerOnly()},
					},
				},
				{
					ID: "m3-2", Title: "Air Cargo", Icon: "Layers", ServiceID: "tracking-air", Online: true,
					Roles: []Role{RoleBuyer, RoleVendor},
					Children: []Node{
						{ID: "m3-2-1", Title: "Flight Schedules", Icon: "FileText", ServiceID: "tracking-flight", Online: true, Roles: buyerOnly()},
						{ID: "m3-2-2", Title: "AWB Tracking", Icon: "Database", ServiceID: "tracking-awb", Online: true, Roles: buyerOnly()},
					},
				},
				{
					ID: "m3-3", Title: "Land Logistics", Icon: "Truck", ServiceID: "tracking-land", StatusLabel: "不可用",
					Roles: []Role{RoleBuyer, RoleFreightForwarder},
					Children: []Node{
						{ID: "m3-3-1", Title: "Truck Dispatch", Icon: "Users", ServiceID: "tracking-truck", Roles: buyerOnly()},
						{ID: "m3-3-2", Title: "Route Optimization", Icon: "MapPin", ServiceID: "tracking-route", Roles: buyerOnly()},
					},
				},
			},
		},
		{ID: "m7", Title: "Reporting", Icon: "BarChart3", ServiceID: "reporting", Online: true, Roles: buyerVendorForwarder()},
	}
}

// Validate checks that ids are non-empty and globally unique, that every role
// is known and that each root admits some role. All problems are reported.
func Validate(f Forest) error {
	var errs []error
	seen := make(map[string]bool)
	Walk(f, func(n Node, depth int) bool {
		if n.ID == "" {
			errs = append(errs, fmt.Errorf("%w (title %q)", ErrEmptyID, n.Title))
		} else if seen[n.ID] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateID, n.ID))
		}
		seen[n.ID] = true
		if depth == 0 && len(n.Roles) == 0 {
			errs = append(errs, fmt.Errorf("%w: %s", ErrNoRoles, n.ID))
		}
		for _, r := range n.Roles {
			if _, err := ParseRole(string(r)); err != nil {
				errs = append(errs, fmt.Errorf("node %s: %w", n.ID, err))
			}
		}
		return true
	})
	return errors.Join(errs...)
}
