package entity

import (
	"github.com/google/uuid"
)

type Business struct {
	Base
	OwnerID     uuid.UUID `db:"owner_id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	Address     *string   `db:"address"`
	Phone       *string   `db:"phone"`
	IsActive    bool      `db:"is_active"`
}
