package entity

import (
	"time"

	"github.com/google/uuid"
)

// User usuario con credenciales (username/password). PasswordHash es bcrypt; nunca se expone.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
