package models

// PrincipalKind distinguishes the two authenticated identity namespaces.
// Host and client emails are independent; a token is only valid for the
// endpoints of its kind.
type PrincipalKind string

const (
	KindHost   PrincipalKind = "host"
	KindClient PrincipalKind = "client"
)
