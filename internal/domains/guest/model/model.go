package model

import "hotel/shared/model"

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID      = "id"
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldAddress = "address"
)

type Guest struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Email   string `db:"email"`
	Phone   string `db:"phone"`
	Address string `db:"address"`
	model.Metadata
}
