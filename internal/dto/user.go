package dto

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1"`
	Company  *string `json:"company"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Language *string `json:"language" binding:"omitempty,max=5"`
	ImageURL *string `json:"imageUrl" binding:"omitempty,url"`
	// Password is ignored for tokens issued to partner applications.
	Password *string `json:"password" binding:"omitempty,min=1"`
}

// RegisterRequest is the body of a local sign-up.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=1"`
	Name     string `json:"name"`
	Language string `json:"language" binding:"omitempty,max=5"`
}
