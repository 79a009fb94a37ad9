package domain

import "encoding/json"

// ConnectionID is the identity provider a UserConnection belongs to.
type ConnectionID string

const (
	ConnectionGoogle   ConnectionID = "google"
	ConnectionFacebook ConnectionID = "facebook"
)

// Source returns the AuthSource recorded on users first created through this provider.
func (c ConnectionID) Source() AuthSource {
	return AuthSource(c)
}

// Valid reports whether c is a supported provider.
func (c ConnectionID) Valid() bool {
	return c == ConnectionGoogle || c == ConnectionFacebook
}

// UserConnection links a provider identity to a local user.
// (ConnectionID, ConnectionUserID) is unique; ConnectionData is written once.
type UserConnection struct {
	UserID           string          `json:"userId"`
	ConnectionID     ConnectionID    `json:"connectionId"`
	ConnectionUserID string          `json:"connectionUserId"`
	ConnectionData   json.RawMessage `json:"connectionData,omitempty"`
	AuditFields
}
