package dto_test

import (
	"net/http"
	"testing"
	"time"

	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomRequest_ToModel(t *testing.T) {
	req := dto.CreateRoomRequest{Number: " 101 ", Type: model.TypeDouble, Price: 80}

	room := req.ToModel("front-desk")

	assert.NotEmpty(t, room.ID)
	assert.Equal(t, "101", room.Number)
	assert.Equal(t, model.StatusAvailable, room.Status)
	assert.InDelta(t, 80.0, room.Price, 0)
	assert.Equal(t, "front-desk", room.CreatedBy)
	assert.Equal(t, room.CreatedAt, room.ModifiedAt)
}

func TestCreateRoomRequest_ToModelKeepsStatus(t *testing.T) {
	req := dto.CreateRoomRequest{Number: "7", Type: model.TypeSuite, Price: 300, Status: model.StatusMaintenance}

	assert.Equal(t, model.StatusMaintenance, req.ToModel("x").Status)
}

func TestUpdateRoomRequest_IsEmpty(t *testing.T) {
	price := 10.0

	assert.True(t, (&dto.UpdateRoomRequest{}).IsEmpty())
	assert.False(t, (&dto.UpdateRoomRequest{Price: &price}).IsEmpty())
	assert.False(t, (&dto.UpdateRoomRequest{Status: model.StatusOccupied}).IsEmpty())
}

func TestRoomRequests_RejectBlankNumber(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "create",
			err:  validator.ValidateStruct(&dto.CreateRoomRequest{Number: "   ", Type: model.TypeSingle, Price: 50}),
		},
		{
			name: "update",
			err:  validator.ValidateStruct(&dto.UpdateRoomRequest{Number: "\t"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.Equal(t, "number cannot be blank", tt.err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(tt.err))
		})
	}

	assert.NoError(t, validator.ValidateStruct(&dto.UpdateRoomRequest{}))
	assert.NoError(t, validator.ValidateStruct(&dto.CreateRoomRequest{Number: " 101 ", Type: model.TypeSingle, Price: 50}))
}

func TestGetRoomsResponse_FromModels(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rooms := []model.Room{
		{ID: "1", Number: "101", Type: model.TypeSingle, Price: 50, Status: model.StatusAvailable, Metadata: gModel.NewMetadata("a", at)},
		{ID: "2", Number: "102", Type: model.TypeDouble, Price: 70, Status: model.StatusOccupied, Metadata: gModel.NewMetadata("a", at)},
	}

	var res dto.GetRoomsResponse
	res.FromModels(rooms, 12, 10)

	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Rooms, 2)
	assert.Equal(t, "102", res.Rooms[1].Number)
	assert.Equal(t, model.StatusOccupied, res.Rooms[1].Status)
}
