// Copyright (c) 2026 Scrapbook. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Roles

// Role represents the authorization level carried by a token.
type Role string

const (
	// RoleAdmin may curate the scrapbook (create and delete items).
	RoleAdmin Role = "admin"

	// RoleViewer may only read. Anonymous callers are viewers.
	RoleViewer Role = "viewer"
)

// # Capabilities

// Capability names a single action a caller may perform.
type Capability string

const (
	CapCreateItem Capability = "create_item"
	CapDeleteItem Capability = "delete_item"
)

// Policy decides which capabilities a role is granted.
type Policy string

const (
	// PolicyOpen grants every capability to every caller. It is an explicit
	// deployment choice for single-user setups, not an implicit default flag.
	PolicyOpen Policy = "open"

	// PolicyAdmin grants mutations to admin tokens only.
	PolicyAdmin Policy = "admin"
)

// Allows reports whether a caller holding role may perform capability.
func (p Policy) Allows(role Role, capability Capability) bool {
	switch p {
	case PolicyOpen:
		return true
	case PolicyAdmin:
		return role == RoleAdmin
	default:
		return false
	}
}

// RoleOf resolves the role carried by claims; nil claims are viewers.
func RoleOf(claims *Claims) Role {
	if claims == nil {
		return RoleViewer
	}
	if Role(claims.Role) == RoleAdmin {
		return RoleAdmin
	}
	return RoleViewer
}
