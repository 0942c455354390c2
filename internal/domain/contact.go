package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contact is an address-book entry.
type Contact struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Email     *string
	Phone     *string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
