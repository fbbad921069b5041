// Package ident derives stable content-addressed identifiers for entities
// that have no natural key. The same (namespace, defining string) pair
// always yields the same identifier, within and across runs, so textually
// identical values collapse to one graph node by construction.
package ident

import "github.com/google/uuid"

// Namespace separates the identifier spaces of the different entity kinds.
// A birthplace called "Amsterdam" and a street string "Amsterdam" must not
// collide, so each kind hashes under its own UUID namespace.
type Namespace uuid.UUID

var (
	// HomeLocation keys locations resolved from an address string.
	HomeLocation = derive("home-location")

	// BirthPlace keys locations resolved from a birth place name.
	BirthPlace = derive("birthplace")

	// Occupation keys occupation observations.
	Occupation = derive("occupation")

	// RoleType keys reusable role type nodes ("born").
	RoleType = derive("role-type")
)

func derive(kind string) Namespace {
	return Namespace(uuid.NewSHA1(uuid.NameSpaceOID, []byte(kind)))
}

// New returns the version-5 UUID string of s under ns.
func New(ns Namespace, s string) string {
	return uuid.NewSHA1(uuid.UUID(ns), []byte(s)).String()
}
