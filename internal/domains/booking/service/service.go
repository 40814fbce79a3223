package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/metrics"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	guestModel "hotel/internal/domains/guest/model"
	guestRepo "hotel/internal/domains/guest/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultLockTTL = 10 * time.Second

const (
	transitionCreate   = "create"
	transitionUpdate   = "update"
	transitionCheckIn  = "check_in"
	transitionCheckOut = "check_out"
	transitionDelete   = "delete"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByGuest(ctx context.Context, guestID string, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	CheckIn(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckOut(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckAvailability(ctx context.Context, roomID string, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	AvailableRooms(ctx context.Context, req dto.AvailableRoomsRequest) (dto.AvailableRoomsResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	rooms     roomRepo.Room
	guests    guestRepo.Guest
	tx        gRepo.Transactor
	locker    cache.Locker
	cache     cache.RedisCache
	publisher kafka.Publisher
	cfg       *config.Config
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	rooms roomRepo.Room,
	guests guestRepo.Guest,
	tx gRepo.Transactor,
	locker cache.Locker,
	cache cache.RedisCache,
	publisher kafka.Publisher,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		rooms:     rooms,
		guests:    guests,
		tx:        tx,
		locker:    locker,
		cache:     cache,
		publisher: publisher,
		cfg:       cfg,
		otel:      otel,
	}
}

func (s *serviceImpl) lockTTL() time.Duration {
	if s.cfg.App.Booking.LockTTLSeconds <= 0 {
		return defaultLockTTL
	}

	return time.Duration(s.cfg.App.Booking.LockTTLSeconds) * time.Second
}

// logFor keeps client rejections such as conflicts at debug level.
func logFor(err error) *zerolog.Event {
	if failure.GetCode(err) < http.StatusInternalServerError {
		return log.Debug()
	}

	return log.Error()
}

// withRoomLock serializes writers that place a stay on roomID.
func (s *serviceImpl) withRoomLock(ctx context.Context, roomID string, fn func() error) error {
	key := cache.LockKey(roomModel.EntityName, roomID)

	token, err := s.locker.Lock(ctx, key, s.lockTTL())
	if errors.Is(err, cache.ErrLockNotAcquired) {
		return failure.Conflict("room is being booked, retry") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to lock room")

		return fmt.Errorf("failed to lock room: %w", err)
	}

	defer func() {
		if err := s.locker.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
			log.Error().Err(err).Str("room_id", roomID).Msg("failed to unlock room")
		}
	}()

	return fn()
}

func (s *serviceImpl) ensureGuest(ctx context.Context, guestID string) error {
	exist, err := s.guests.Exist(ctx, shared.FilterByID(guestID, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if guest exists")

		return fmt.Errorf("failed to check if guest exists: %w", err)
	}

	if !exist {
		return failure.NotFound("guest not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { metrics.IncTransition(transitionCreate, err) }()

	checkIn, checkOut, err := dto.ParseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	if err = s.ensureGuest(ctx, req.GuestID); err != nil {
		return res, err
	}

	var booking model.Booking

	err = s.withRoomLock(ctx, req.RoomID, func() error {
		return s.tx.WithTransaction(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
			availability, err := s.checkAvailabilityTx(ctx, sqltx, model.StayQuery{
				RoomID:   req.RoomID,
				CheckIn:  checkIn,
				CheckOut: checkOut,
			})
			if err != nil {
				return err
			}

			if !availability.Admissible {
				return rejection(availability)
			}

			booking = req.ToModel(shared.ActorFromContext(ctx), availability)

			return s.repo.InsertTx(ctx, sqltx, booking) //nolint:wrapcheck
		})
	})
	if err != nil {
		logFor(err).Err(err).Str("room_id", req.RoomID).Msg("failed to create booking")

		return res, err
	}

	s.invalidate(ctx, booking.ID, constant.Empty)
	s.publish(ctx, model.EventCreated, booking, constant.Empty)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(constant.CacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(constant.CacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(constant.CacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByGuest(ctx context.Context, guestID string, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByGuest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureGuest(ctx, guestID); err != nil {
		return res, err
	}

	return s.GetAll(ctx, req, shared.FilterByID(guestID, model.FieldGuestID, model.TableName))
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) getBookingForUpdate(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Booking, error) {
	booking, err := s.repo.GetForUpdateTx(ctx, sqltx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to lock booking")

		return booking, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// Update patches a booking. A stay change on an active booking is re-validated against the target room
// with this booking excluded, and the total is recomputed from the target room's price.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { metrics.IncTransition(transitionUpdate, err) }()

	if req.Status != constant.Empty {
		return res, failure.BadRequestFromString("status cannot be set on this request") // nolint:wrapcheck
	}

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	current, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if req.GuestID != constant.Empty && req.GuestID != current.GuestID {
		if err = s.ensureGuest(ctx, req.GuestID); err != nil {
			return res, err
		}
	}

	var updated model.Booking

	apply := func() error {
		return s.tx.WithTransaction(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
			booking, err := s.getBookingForUpdate(ctx, sqltx, id)
			if err != nil {
				return err
			}

			fields, next, err := s.patch(ctx, sqltx, booking, req)
			if err != nil {
				return err
			}

			if err = s.repo.UpdateTx(ctx, sqltx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
				log.Error().Err(err).Msg("failed to update booking")

				return fmt.Errorf("failed to update booking: %w", err)
			}

			updated = next

			return nil
		})
	}

	if req.ChangesStay() && current.IsActive() {
		targetRoom := current.RoomID
		if req.RoomID != constant.Empty {
			targetRoom = req.RoomID
		}

		err = s.withRoomLock(ctx, targetRoom, apply)
	} else {
		err = apply()
	}

	if err != nil {
		return res, err
	}

	s.invalidate(ctx, id, constant.Empty)
	s.publish(ctx, model.EventUpdated, updated, constant.Empty)

	res.FromModel(updated)

	return res, nil
}

// patch builds the update columns for booking and the booking as it will read after the update.
func (s *serviceImpl) patch(ctx context.Context, sqltx *sqlx.Tx, booking model.Booking, req dto.UpdateBookingRequest) (map[string]any, model.Booking, error) {
	actor := shared.ActorFromContext(ctx)
	fields := shared.TransformFields(req, actor)

	next := booking
	next.ModifiedAt, _ = fields[constant.FieldModifiedAt].(time.Time)
	next.ModifiedBy = actor

	if req.GuestID != constant.Empty {
		next.GuestID = req.GuestID
	}

	if req.IsPaid != nil {
		next.IsPaid = *req.IsPaid
	}

	if !req.ChangesStay() {
		return fields, next, nil
	}

	if req.RoomID != constant.Empty && req.RoomID != booking.RoomID && booking.Status != model.StatusConfirmed {
		return nil, next, failure.Conflict("room can only be changed on a confirmed booking") // nolint:wrapcheck
	}

	if req.RoomID != constant.Empty {
		next.RoomID = req.RoomID
	}

	if req.CheckIn != constant.Empty {
		checkIn, err := dto.ParseStayTime(req.CheckIn)
		if err != nil {
			return nil, next, failure.BadRequestFromString("check_in must be an RFC3339 timestamp or a YYYY-MM-DD date") // nolint:wrapcheck
		}

		next.CheckIn = checkIn
	}

	if req.CheckOut != constant.Empty {
		checkOut, err := dto.ParseStayTime(req.CheckOut)
		if err != nil {
			return nil, next, failure.BadRequestFromString("check_out must be an RFC3339 timestamp or a YYYY-MM-DD date") // nolint:wrapcheck
		}

		next.CheckOut = checkOut
	}

	if err := dto.ValidateStay(next.CheckIn, next.CheckOut); err != nil {
		return nil, next, err
	}

	query := model.StayQuery{
		RoomID:           next.RoomID,
		CheckIn:          next.CheckIn,
		CheckOut:         next.CheckOut,
		ExcludeBookingID: booking.ID,
	}

	var (
		availability model.Availability
		err          error
	)

	if booking.IsActive() {
		availability, err = s.checkAvailabilityTx(ctx, sqltx, query)
		if err != nil {
			return nil, next, err
		}

		if !availability.Admissible {
			return nil, next, rejection(availability)
		}
	} else {
		room, err := s.rooms.GetForUpdateTx(ctx, sqltx, shared.FilterByID(next.RoomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return nil, next, fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return nil, next, failure.NotFound("room not found") // nolint:wrapcheck
		}

		availability = evaluate(room, query, nil)
	}

	next.TotalAmount = availability.TotalAmount

	fields[model.FieldCheckIn] = next.CheckIn
	fields[model.FieldCheckOut] = next.CheckOut
	fields[model.FieldTotalAmount] = next.TotalAmount

	return fields, next, nil
}

// invalidate drops the cached booking and lists. roomID is set when the transition changed that room's status.
func (s *serviceImpl) invalidate(ctx context.Context, bookingID, roomID string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(constant.CacheGetBooking, bookingID)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking cache")
	}

	shared.InvalidateCaches(ctx, s.cache, constant.CacheGetAllBooking)
	shared.InvalidateCaches(ctx, s.cache, constant.CacheCountBooking)

	if roomID == constant.Empty {
		return
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(constant.CacheGetRoom, roomID)); err != nil {
		log.Error().Err(err).Msg("failed to delete room cache")
	}

	shared.InvalidateCaches(ctx, s.cache, constant.CacheGetAllRoom)
	shared.InvalidateCaches(ctx, s.cache, constant.CacheCountRoom)
}

// publish emits a lifecycle event. Failures are logged and never fail the request.
func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking, roomStatus string) {
	event := model.NewEvent(eventType, booking, roomStatus, timezone.Now())

	if err := s.publisher.Publish(ctx, kafka.Message{Key: booking.RoomID, Value: event}); err != nil {
		log.Error().Err(err).Str("event", eventType).Str("booking_id", booking.ID).Msg("failed to publish booking event")
	}
}
