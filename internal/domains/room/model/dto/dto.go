package dto

import (
	"strings"

	"hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Number string  `json:"number" validate:"required,notblank,max=20"`
	Type   string  `json:"type"   validate:"required,oneof=single double deluxe suite"`
	Price  float64 `json:"price"  validate:"required,gt=0"`
	Status string  `json:"status" validate:"omitempty,oneof=available occupied maintenance"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := model.StatusAvailable
	if c.Status != "" {
		status = c.Status
	}

	return model.Room{
		ID:       uuid.NewString(),
		Number:   NormalizeNumber(c.Number),
		Type:     c.Type,
		Price:    c.Price,
		Status:   status,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	Number string   `db:"number" json:"number" validate:"omitempty,notblank,max=20"`
	Type   string   `db:"type"   json:"type"   validate:"omitempty,oneof=single double deluxe suite"`
	Price  *float64 `db:"price"  json:"price"  validate:"omitempty,gt=0"`
	Status string   `db:"status" json:"status" validate:"omitempty,oneof=available occupied maintenance"`
}

func (u *UpdateRoomRequest) IsEmpty() bool {
	return u.Number == "" && u.Type == "" && u.Price == nil && u.Status == ""
}

// NormalizeNumber trims surrounding whitespace so " 101" and "101" collide.
func NormalizeNumber(number string) string {
	return strings.TrimSpace(number)
}

type RoomResponse struct {
	ID     string  `json:"id"`
	Number string  `json:"number"`
	Type   string  `json:"type"`
	Price  float64 `json:"price"`
	Status string  `json:"status"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Type = model.Type
	r.Price = model.Price
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
