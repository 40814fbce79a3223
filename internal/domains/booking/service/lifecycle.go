package service

import (
	"context"
	"fmt"
	"time"

	"hotel/infras/metrics"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

func auditFields(actor string) map[string]any {
	return map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}
}

func (s *serviceImpl) setBookingStatus(ctx context.Context, sqltx *sqlx.Tx, booking *model.Booking, status string) error {
	actor := shared.ActorFromContext(ctx)
	fields := auditFields(actor)
	fields[model.FieldStatus] = status

	if err := s.repo.UpdateTx(ctx, sqltx, fields, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = status
	booking.ModifiedAt, _ = fields[constant.FieldModifiedAt].(time.Time)
	booking.ModifiedBy = actor

	return nil
}

func (s *serviceImpl) setRoomStatus(ctx context.Context, sqltx *sqlx.Tx, roomID, status string) error {
	fields := auditFields(shared.ActorFromContext(ctx))
	fields[roomModel.FieldStatus] = status

	if err := s.rooms.UpdateTx(ctx, sqltx, fields, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName)); err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to update room status")

		return fmt.Errorf("failed to update room status: %w", err)
	}

	return nil
}

// CheckIn moves a booking to checked-in and marks its room occupied. Repeating it is a no-op success.
func (s *serviceImpl) CheckIn(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { metrics.IncTransition(transitionCheckIn, err) }()

	var booking model.Booking

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		booking, err = s.getBookingForUpdate(ctx, sqltx, id)
		if err != nil {
			return err
		}

		switch booking.Status {
		case model.StatusCheckedOut:
			return failure.Conflict("booking is already checked out") // nolint:wrapcheck
		case model.StatusConfirmed:
			if err = s.setBookingStatus(ctx, sqltx, &booking, model.StatusCheckedIn); err != nil {
				return err
			}
		}

		return s.setRoomStatus(ctx, sqltx, booking.RoomID, roomModel.StatusOccupied)
	})
	if err != nil {
		return res, err
	}

	s.invalidate(ctx, booking.ID, booking.RoomID)
	s.publish(ctx, model.EventCheckedIn, booking, roomModel.StatusOccupied)

	res.FromModel(booking)

	return res, nil
}

// CheckOut closes a booking and frees its room.
func (s *serviceImpl) CheckOut(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CheckOut")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { metrics.IncTransition(transitionCheckOut, err) }()

	var booking model.Booking

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		booking, err = s.getBookingForUpdate(ctx, sqltx, id)
		if err != nil {
			return err
		}

		if booking.Status == model.StatusCheckedOut {
			return failure.Conflict("booking is already checked out") // nolint:wrapcheck
		}

		if err = s.setBookingStatus(ctx, sqltx, &booking, model.StatusCheckedOut); err != nil {
			return err
		}

		return s.setRoomStatus(ctx, sqltx, booking.RoomID, roomModel.StatusAvailable)
	})
	if err != nil {
		return res, err
	}

	s.invalidate(ctx, booking.ID, booking.RoomID)
	s.publish(ctx, model.EventCheckedOut, booking, roomModel.StatusAvailable)

	res.FromModel(booking)

	return res, nil
}

// Delete removes a booking. An active booking frees its room first.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { metrics.IncTransition(transitionDelete, err) }()

	var (
		booking    model.Booking
		roomStatus string
	)

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		booking, err = s.getBookingForUpdate(ctx, sqltx, id)
		if err != nil {
			return err
		}

		if booking.IsActive() {
			if err = s.setRoomStatus(ctx, sqltx, booking.RoomID, roomModel.StatusAvailable); err != nil {
				return err
			}

			roomStatus = roomModel.StatusAvailable
		}

		if err = s.repo.DeleteTx(ctx, sqltx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking")

			return fmt.Errorf("failed to delete booking: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	roomID := constant.Empty
	if roomStatus != constant.Empty {
		roomID = booking.RoomID
	}

	s.invalidate(ctx, id, roomID)
	s.publish(ctx, model.EventDeleted, booking, roomStatus)

	return nil
}
