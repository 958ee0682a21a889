package dto

// ContactRequest defines the payload of the public contact form. The message
// is delivered to the configured recipient, never to a caller-chosen address.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"omitempty"`
	Message string `json:"message" binding:"required"`
}
