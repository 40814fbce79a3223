package service_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	guestMocks "hotel/internal/domains/guest/mocks"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/failure"
	repoMocks "hotel/shared/repository/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const lockedRoomID = "c1d2e3f4-a5b6-4c7d-8e9f-0a1b2c3d4e5f"

type lockingFixture struct {
	svc    service.Booking
	locker *cacheMocks.MockLocker
	tx     *repoMocks.MockTransactor
}

func setupLocking(t *testing.T, lockTTL int) lockingFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{}
	cfg.App.Booking.LockTTLSeconds = lockTTL

	guests := guestMocks.NewMockGuest(ctrl)
	guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()

	f := lockingFixture{
		locker: cacheMocks.NewMockLocker(ctrl),
		tx:     repoMocks.NewMockTransactor(ctrl),
	}

	otl := mocks.NewOtel()
	f.svc = service.New(
		&fakeBookings{},
		&fakeRooms{},
		guests,
		f.tx,
		f.locker,
		cache.NewRedisCache(client, otl),
		kafka.NewNoop(),
		cfg,
		otl,
	)

	return f
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		GuestID:  guestID,
		RoomID:   lockedRoomID,
		CheckIn:  "2024-03-01",
		CheckOut: "2024-03-03",
	}
}

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	original := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.TraceLevel)

	t.Cleanup(func() { log.Logger = original })

	return &buf
}

func TestBookingService_LockHeldIsConflict(t *testing.T) {
	f := setupLocking(t, 5)

	f.locker.EXPECT().Lock(gomock.Any(), "lock:room:"+lockedRoomID, 5*time.Second).Return("", cache.ErrLockNotAcquired)

	_, err := f.svc.Create(context.Background(), createRequest())

	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Equal(t, "room is being booked, retry", err.Error())
}

func TestBookingService_RejectionsStayOutOfErrorLog(t *testing.T) {
	f := setupLocking(t, 5)
	buf := captureLog(t)

	f.locker.EXPECT().Lock(gomock.Any(), gomock.Any(), gomock.Any()).Return("", cache.ErrLockNotAcquired)

	_, err := f.svc.Create(context.Background(), createRequest())
	require.Error(t, err)

	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.NotContains(t, buf.String(), `"level":"error"`)
}

func TestBookingService_LockBackendDown(t *testing.T) {
	f := setupLocking(t, 0)

	f.locker.EXPECT().Lock(gomock.Any(), gomock.Any(), 10*time.Second).Return("", errors.New("dial tcp: connection refused"))

	buf := captureLog(t)

	_, err := f.svc.Create(context.Background(), createRequest())

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestBookingService_TransactionFailureReleasesLock(t *testing.T) {
	f := setupLocking(t, 5)

	gomock.InOrder(
		f.locker.EXPECT().Lock(gomock.Any(), "lock:room:"+lockedRoomID, gomock.Any()).Return("token-1", nil),
		f.tx.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).Return(errors.New("could not begin transaction")),
		f.locker.EXPECT().Unlock(gomock.Any(), "lock:room:"+lockedRoomID, "token-1").Return(nil),
	)

	buf := captureLog(t)

	_, err := f.svc.Create(context.Background(), createRequest())

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.Contains(t, buf.String(), `"level":"error"`)
}
