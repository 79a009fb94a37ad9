package domain

import "encoding/json"

// ResolverInput is a provider profile normalized for identity resolution.
type ResolverInput struct {
	Provider    ConnectionID
	SubjectID   string
	Email       string
	DisplayName string
	ImageURL    *string
	Profile     json.RawMessage // raw provider payload, stored on the connection
}

// ResolutionKind tells which branch identity resolution took.
type ResolutionKind int

const (
	// ResolutionExisting: the provider identity was already linked; nothing was written.
	ResolutionExisting ResolutionKind = iota + 1
	// ResolutionLinked: a user with the same email existed and the identity was linked to it.
	ResolutionLinked
	// ResolutionCreated: a new user was created and linked.
	ResolutionCreated
)

func (k ResolutionKind) String() string {
	switch k {
	case ResolutionExisting:
		return "existing"
	case ResolutionLinked:
		return "linked"
	case ResolutionCreated:
		return "created"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of resolving a provider identity to a local user.
type Resolution struct {
	User User
	Kind ResolutionKind
}

// WasCreated reports whether a new user row was created.
func (r Resolution) WasCreated() bool {
	return r.Kind == ResolutionCreated
}
