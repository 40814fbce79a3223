package service

import (
	"context"
	"fmt"
	"time"

	"hotel/infras/metrics"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// firstConflict returns the earliest overlapping booking only.
var firstConflict = gDto.QueryParams{
	Page:    1,
	Limit:   1,
	SortBy:  model.FieldCheckIn,
	SortDir: gDto.SortDirAsc,
}

// overlapFilter matches active bookings whose [check_in, check_out) intersects the requested stay.
// An empty room id matches every room.
func overlapFilter(roomID string, checkIn, checkOut time.Time, excludeID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldStatus,
			Value:    model.ActiveStatuses,
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "requested_check_out",
			Field:    model.FieldCheckIn,
			Value:    checkOut,
			Operator: gDto.FilterOperatorLess,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "requested_check_in",
			Field:    model.FieldCheckOut,
			Value:    checkIn,
			Operator: gDto.FilterOperatorGreater,
			Table:    model.TableName,
		},
	}

	if roomID != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Value:    roomID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if excludeID != constant.Empty {
		filters = append(filters, gDto.Filter{
			ArgName:  "excluded_id",
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

func evaluate(room roomModel.Room, query model.StayQuery, conflicts []model.Booking) model.Availability {
	nights := model.Nights(query.CheckIn, query.CheckOut)

	availability := model.Availability{
		RoomID:      room.ID,
		CheckIn:     query.CheckIn,
		CheckOut:    query.CheckOut,
		Nights:      nights,
		TotalAmount: model.TotalAmount(nights, room.Price),
	}

	switch {
	case room.UnderMaintenance():
		availability.Reason = model.ReasonMaintenance
	case len(conflicts) > 0:
		availability.Reason = model.ReasonOverlap
		availability.ConflictingBookingID = conflicts[0].ID
	default:
		availability.Admissible = true
	}

	return availability
}

// rejection turns a non-admissible result into the error returned to writers.
func rejection(availability model.Availability) error {
	metrics.IncRejection(availability.Reason)

	if availability.Reason == model.ReasonMaintenance {
		return failure.Conflict("room is under maintenance") // nolint:wrapcheck
	}

	return failure.ConflictWithDetails("room is already booked for the requested dates", map[string]any{ // nolint:wrapcheck
		"conflicting_booking_id": availability.ConflictingBookingID,
	})
}

func (s *serviceImpl) checkAvailability(ctx context.Context, query model.StayQuery) (model.Availability, error) {
	room, err := s.rooms.Get(ctx, shared.FilterByID(query.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return model.Availability{}, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return model.Availability{}, failure.NotFound("room not found") // nolint:wrapcheck
	}

	conflicts, err := s.repo.GetAll(ctx, firstConflict, overlapFilter(query.RoomID, query.CheckIn, query.CheckOut, query.ExcludeBookingID))
	if err != nil {
		log.Error().Err(err).Msg("failed to find overlapping bookings")

		return model.Availability{}, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}

	return evaluate(room, query, conflicts), nil
}

// checkAvailabilityTx is checkAvailability inside sqltx, holding the room row until commit.
func (s *serviceImpl) checkAvailabilityTx(ctx context.Context, sqltx *sqlx.Tx, query model.StayQuery) (model.Availability, error) {
	room, err := s.rooms.GetForUpdateTx(ctx, sqltx, shared.FilterByID(query.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to lock room")

		return model.Availability{}, fmt.Errorf("failed to lock room: %w", err)
	}

	if room.ID == constant.Empty {
		return model.Availability{}, failure.NotFound("room not found") // nolint:wrapcheck
	}

	conflicts, err := s.repo.GetAllTx(ctx, sqltx, firstConflict, overlapFilter(query.RoomID, query.CheckIn, query.CheckOut, query.ExcludeBookingID))
	if err != nil {
		log.Error().Err(err).Msg("failed to find overlapping bookings")

		return model.Availability{}, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}

	return evaluate(room, query, conflicts), nil
}

// CheckAvailability answers whether roomID can host the stay. A rejection is a normal result, not an error.
func (s *serviceImpl) CheckAvailability(ctx context.Context, roomID string, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, checkOut, err := dto.ParseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	availability, err := s.checkAvailability(ctx, model.StayQuery{
		RoomID:   roomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
	})
	if err != nil {
		return res, err
	}

	if !availability.Admissible {
		metrics.IncRejection(availability.Reason)
	}

	res.FromModel(availability)

	return res, nil
}

// AvailableRooms lists rooms not under maintenance with no active booking overlapping the stay.
func (s *serviceImpl) AvailableRooms(ctx context.Context, req dto.AvailableRoomsRequest) (res dto.AvailableRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.AvailableRooms")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, checkOut, err := dto.ParseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	roomFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldStatus,
				Value:    roomModel.StatusMaintenance,
				Operator: gDto.FilterOperatorNotEq,
				Table:    roomModel.TableName,
			},
		},
	}

	if req.Type != constant.Empty {
		roomFilter.Filters = append(roomFilter.Filters, gDto.Filter{
			Field:    roomModel.FieldType,
			Value:    req.Type,
			Operator: gDto.FilterOperatorEq,
			Table:    roomModel.TableName,
		})
	}

	rooms, err := s.rooms.GetAll(ctx, gDto.QueryParams{SortBy: roomModel.FieldNumber, SortDir: gDto.SortDirAsc}, roomFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	overlapping, err := s.repo.GetAll(ctx, gDto.QueryParams{}, overlapFilter(constant.Empty, checkIn, checkOut, constant.Empty), model.FieldRoomID)
	if err != nil {
		log.Error().Err(err).Msg("failed to find overlapping bookings")

		return res, fmt.Errorf("failed to find overlapping bookings: %w", err)
	}

	busy := make(map[string]struct{}, len(overlapping))
	for _, booking := range overlapping {
		busy[booking.RoomID] = struct{}{}
	}

	res.CheckIn = timezone.Format(checkIn, constant.DateFormat)
	res.CheckOut = timezone.Format(checkOut, constant.DateFormat)
	res.Nights = model.Nights(checkIn, checkOut)
	res.Rooms = []roomDto.RoomResponse{}

	for _, room := range rooms {
		if _, ok := busy[room.ID]; ok {
			continue
		}

		var item roomDto.RoomResponse
		item.FromModel(room)

		res.Rooms = append(res.Rooms, item)
	}

	return res, nil
}
