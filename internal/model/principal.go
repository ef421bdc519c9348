package model

import "github.com/google/uuid"

// Principal is the authenticated caller. Every fleet and schedule row is
// scoped to the principal's user id.
type Principal struct {
	UserID  uuid.UUID
	Email   string
	Company string
}
