package domain

// AuthSource identifies where a user account originally came from.
type AuthSource string

const (
	SourceLocal    AuthSource = "local"
	SourceGoogle   AuthSource = "google"
	SourceFacebook AuthSource = "facebook"
)

// User represents an account in the domain.
// Password and EmailVerificationCode are never serialized.
type User struct {
	UserID                string     `json:"id"`
	Email                 string     `json:"email"`
	Name                  string     `json:"name"`
	Company               *string    `json:"company"`
	Language              string     `json:"language"`
	PasswordHash          *string    `json:"-"` // nil means no local login
	EmailIsVerified       bool       `json:"emailIsVerified"`
	ImageURL              *string    `json:"imageUrl"`
	Source                AuthSource `json:"source"`
	SourceID              *string    `json:"sourceId"`
	EmailVerificationCode string     `json:"-"`
	AuditFields
}

// HasPassword reports whether local email/password login is possible.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// HasImage reports whether a profile image is already set.
func (u *User) HasImage() bool {
	return u.ImageURL != nil && *u.ImageURL != ""
}
