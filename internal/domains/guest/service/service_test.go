package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	guestMocks "hotel/internal/domains/guest/mocks"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc      service.Guest
	repo     *guestMocks.MockGuest
	bookings *bookingMocks.MockBooking
	cache    *cacheMocks.MockRedisCache
}

// setup uses a gomock cache. Only write paths are exercised here since reads save to the cache asynchronously.
func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:     guestMocks.NewMockGuest(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, f.bookings, cfg, f.cache, mocks.NewOtel())

	return f
}

func (f fixture) expectInvalidation(id string) {
	if id != "" {
		f.cache.EXPECT().Delete(gomock.Any(), constant.CacheGetGuest+":"+id).Return(nil)
	}

	f.cache.EXPECT().Clear(gomock.Any(), constant.CacheGetAllGuest+constant.Asterix).Return(nil)
	f.cache.EXPECT().Clear(gomock.Any(), constant.CacheCountGuest+constant.Asterix).Return(nil)
}

func TestGuestService_Create(t *testing.T) {
	t.Run("created with normalized email", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, guest model.Guest) error {
			assert.Equal(t, "ada@example.com", guest.Email)

			return nil
		})
		f.expectInvalidation("")

		res, err := f.svc.Create(context.Background(), dto.CreateGuestRequest{Name: "Ada", Email: "ADA@example.com"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, constant.DefaultActor, res.CreatedBy)
	})

	t.Run("email already exists", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(context.Background(), dto.CreateGuestRequest{Name: "Ada", Email: "ada@example.com"})
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, "email already exists", err.Error())
	})

	t.Run("insert error", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := f.svc.Create(context.Background(), dto.CreateGuestRequest{Name: "Ada", Email: "ada@example.com"})
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestGuestService_GetCacheHit(t *testing.T) {
	f := setup(t)
	f.cache.EXPECT().Get(gomock.Any(), constant.CacheGetGuest+":g-1", gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
		res, ok := value.(*dto.GuestResponse)
		require.True(t, ok)

		res.ID = "g-1"
		res.Name = "Cached"

		return nil
	})

	res, err := f.svc.Get(context.Background(), "g-1")
	require.NoError(t, err)
	assert.Equal(t, "Cached", res.Name)
}

func TestGuestService_GetNotFound(t *testing.T) {
	f := setup(t)
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)

	_, err := f.svc.Get(context.Background(), "g-1")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestGuestService_Update(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.Update(context.Background(), dto.UpdateGuestRequest{}, "g-1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("email taken", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{ID: "g-1", Email: "a@x.io"}, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Update(context.Background(), dto.UpdateGuestRequest{Email: "b@x.io"}, "g-1")
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("same email skips uniqueness check", func(t *testing.T) {
		f := setup(t)
		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{ID: "g-1", Email: "a@x.io"}, nil),
			f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{ID: "g-1", Email: "a@x.io", Phone: "123"}, nil),
		)
		f.expectInvalidation("g-1")

		res, err := f.svc.Update(context.Background(), dto.UpdateGuestRequest{Email: "A@x.io", Phone: "123"}, "g-1")
		require.NoError(t, err)
		assert.Equal(t, "123", res.Phone)
	})
}

func TestGuestService_Delete(t *testing.T) {
	t.Run("has bookings", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		assert.Equal(t, http.StatusConflict, failure.GetCode(f.svc.Delete(context.Background(), "g-1")))
	})

	t.Run("not found", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(f.svc.Delete(context.Background(), "g-1")))
	})

	t.Run("deleted", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.expectInvalidation("g-1")

		assert.NoError(t, f.svc.Delete(context.Background(), "g-1"))
	})
}

func TestGuestService_GetAllError(t *testing.T) {
	f := setup(t)
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("count error"))

	_, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
	assert.Error(t, err)
}
