package readmodel

import "github.com/google/uuid"

// AuthorizedUserRM is the minimal user projection the handlers and the board
// engine need: identity, role, and the display name cached into slot labels.
type AuthorizedUserRM struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}
