package models

// UserConnection is a row of the user_connections table.
type UserConnection struct {
	UserID           string `db:"user_id"`
	ConnectionID     string `db:"connection_id"`
	ConnectionUserID string `db:"connection_user_id"`
	ConnectionData   []byte `db:"connection_data"`
	AuditFields
}
