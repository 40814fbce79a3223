package dto

import (
	"strings"

	"hotel/internal/domains/guest/model"
	"hotel/shared"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateGuestRequest struct {
	Name    string `json:"name"    validate:"required,notblank,max=100"`
	Email   string `json:"email"   validate:"required,email,max=100"`
	Phone   string `json:"phone"   validate:"omitempty,max=20"`
	Address string `json:"address" validate:"omitempty,max=255"`
}

func (c *CreateGuestRequest) ToModel(user string) model.Guest {
	return model.Guest{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(c.Name),
		Email:    NormalizeEmail(c.Email),
		Phone:    c.Phone,
		Address:  c.Address,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateGuestRequest struct {
	Name    string `db:"name"    json:"name"    validate:"omitempty,notblank,max=100"`
	Email   string `db:"email"   json:"email"   validate:"omitempty,email,max=100"`
	Phone   string `db:"phone"   json:"phone"   validate:"omitempty,max=20"`
	Address string `db:"address" json:"address" validate:"omitempty,max=255"`
}

func (u *UpdateGuestRequest) IsEmpty() bool {
	return u.Name == "" && u.Email == "" && u.Phone == "" && u.Address == ""
}

// NormalizeEmail lowercases so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type GuestResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	gDto.Metadata
}

func (r *GuestResponse) FromModel(model model.Guest) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Address = model.Address
	r.Metadata.FromModel(model.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod)
	}
}
