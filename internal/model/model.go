// Package model holds the entity types shared by the domain store and the
// domain services. Every entity is a flat record keyed by an opaque string
// identifier and carries a version counter used for optimistic concurrency
// on updates.
package model

// Entity is implemented by every record held in a store collection.
type Entity interface {
	EntityID() string
	GetVersionID() int
}

// NotFoundPlaceholder is the display value used when a referenced entity
// (patient, doctor, policy) no longer exists. Deletes do not cascade, so
// readers must tolerate dangling references.
const NotFoundPlaceholder = "not found"
