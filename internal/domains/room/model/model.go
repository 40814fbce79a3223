package model

import (
	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID     = "id"
	FieldNumber = "number"
	FieldType   = "type"
	FieldPrice  = "price"
	FieldStatus = "status"
)

const (
	TypeSingle = "single"
	TypeDouble = "double"
	TypeDeluxe = "deluxe"
	TypeSuite  = "suite"
)

const (
	StatusAvailable   = "available"
	StatusOccupied    = "occupied"
	StatusMaintenance = "maintenance"
)

type Room struct {
	ID     string  `db:"id"`
	Number string  `db:"number"`
	Type   string  `db:"type"`
	Price  float64 `db:"price"`
	Status string  `db:"status"`
	model.Metadata
}

func (r Room) UnderMaintenance() bool {
	return r.Status == StatusMaintenance
}

// DuplicateNumber is one group of rooms whose numbers collide once normalized.
type DuplicateNumber struct {
	Number string         `db:"number"`
	Count  int            `db:"count"`
	IDs    pq.StringArray `db:"ids"`
}
