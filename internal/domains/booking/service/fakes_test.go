package service_test

import (
	"context"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared"
	gDto "hotel/shared/dto"

	"github.com/jmoiron/sqlx"
)

var (
	emptyParams     = gDto.QueryParams{}
	emptyParamsPage = gDto.QueryParams{Page: 1, Limit: 10}
)

func byID(id string) gDto.FilterGroup {
	return shared.FilterByID(id, "id", "")
}

func activeOn(roomID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: model.FieldStatus, Value: model.ActiveStatuses, Operator: gDto.FilterOperatorIn},
		},
	}
}

// table is an in-memory store that interprets repository filters against db tags.
type table[T any] struct {
	mu   sync.Mutex
	rows []T
}

func (t *table[T]) insert(row T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = append(t.rows, row)
}

func (t *table[T]) find(params gDto.QueryParams, filter gDto.FilterGroup) []T {
	t.mu.Lock()
	defer t.mu.Unlock()

	res := []T{}

	for _, row := range t.rows {
		if matchGroup(row, filter) {
			res = append(res, row)
		}
	}

	if params.SortBy != "" {
		slices.SortStableFunc(res, func(a, b T) int {
			av, _ := column(a, params.SortBy)
			bv, _ := column(b, params.SortBy)

			if params.SortDir == gDto.SortDirDesc {
				return compare(bv, av)
			}

			return compare(av, bv)
		})
	}

	if params.Limit > 0 && len(res) > params.Limit {
		res = res[:params.Limit]
	}

	return res
}

func (t *table[T]) first(filter gDto.FilterGroup) T {
	var zero T

	rows := t.find(gDto.QueryParams{}, filter)
	if len(rows) == 0 {
		return zero
	}

	return rows[0]
}

func (t *table[T]) update(fields map[string]any, filter gDto.FilterGroup) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.rows {
		if !matchGroup(t.rows[i], filter) {
			continue
		}

		row := reflect.ValueOf(&t.rows[i]).Elem()
		for name, value := range fields {
			if field, ok := fieldByTag(row, name); ok {
				field.Set(reflect.ValueOf(value).Convert(field.Type()))
			}
		}
	}
}

func (t *table[T]) delete(filter gDto.FilterGroup) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = slices.DeleteFunc(t.rows, func(row T) bool { return matchGroup(row, filter) })
}

func fieldByTag(v reflect.Value, tag string) (reflect.Value, bool) {
	for i := range v.NumField() {
		sf := v.Type().Field(i)
		if sf.Anonymous {
			if field, ok := fieldByTag(v.Field(i), tag); ok {
				return field, true
			}

			continue
		}

		if sf.Tag.Get("db") == tag {
			return v.Field(i), true
		}
	}

	return reflect.Value{}, false
}

func column(row any, tag string) (any, bool) {
	field, ok := fieldByTag(reflect.ValueOf(row), tag)
	if !ok {
		return nil, false
	}

	return field.Interface(), true
}

func matchGroup(row any, group gDto.FilterGroup) bool {
	or := strings.EqualFold(group.Operator, gDto.FilterGroupOperatorOr)

	for _, item := range group.Filters {
		var ok bool

		switch f := item.(type) {
		case gDto.Filter:
			ok = matchFilter(row, f)
		case gDto.FilterGroup:
			ok = matchGroup(row, f)
		}

		if or && ok {
			return true
		}

		if !or && !ok {
			return false
		}
	}

	return !or || len(group.Filters) == 0
}

func matchFilter(row any, f gDto.Filter) bool {
	got, ok := column(row, f.Field)
	if !ok {
		return false
	}

	switch f.Operator {
	case gDto.FilterOperatorEq:
		return compare(got, f.Value) == 0
	case gDto.FilterOperatorNotEq:
		return compare(got, f.Value) != 0
	case gDto.FilterOperatorIn:
		values := reflect.ValueOf(f.Value)
		for i := range values.Len() {
			if compare(got, values.Index(i).Interface()) == 0 {
				return true
			}
		}

		return false
	case gDto.FilterOperatorLess:
		return compare(got, f.Value) < 0
	case gDto.FilterOperatorGreater:
		return compare(got, f.Value) > 0
	default:
		return false
	}
}

func compare(a, b any) int {
	switch av := a.(type) {
	case time.Time:
		return av.Compare(b.(time.Time)) //nolint:forcetypeassert
	case float64:
		bv, _ := b.(float64)

		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case string:
		bv, _ := b.(string)

		return strings.Compare(av, bv)
	case bool:
		if av == b {
			return 0
		}

		return 1
	default:
		return 1
	}
}

type fakeBookings struct {
	table[model.Booking]
}

func (f *fakeBookings) Insert(_ context.Context, booking model.Booking) error {
	f.insert(booking)

	return nil
}

func (f *fakeBookings) InsertTx(ctx context.Context, _ *sqlx.Tx, booking model.Booking) error {
	return f.Insert(ctx, booking)
}

func (f *fakeBookings) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Booking, error) {
	return f.first(filter), nil
}

func (f *fakeBookings) GetForUpdateTx(ctx context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error) {
	return f.Get(ctx, filter, columns...)
}

func (f *fakeBookings) GetAll(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
	return f.find(params, filter), nil
}

func (f *fakeBookings) GetAllTx(ctx context.Context, _ *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error) {
	return f.GetAll(ctx, params, filter, columns...)
}

func (f *fakeBookings) Exist(_ context.Context, filter gDto.FilterGroup) (bool, error) {
	return len(f.find(gDto.QueryParams{}, filter)) > 0, nil
}

func (f *fakeBookings) Count(_ context.Context, filter gDto.FilterGroup) (int, error) {
	return len(f.find(gDto.QueryParams{}, filter)), nil
}

func (f *fakeBookings) Update(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
	f.update(fields, filter)

	return nil
}

func (f *fakeBookings) UpdateTx(ctx context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
	return f.Update(ctx, fields, filter)
}

func (f *fakeBookings) Delete(_ context.Context, filter gDto.FilterGroup) error {
	f.delete(filter)

	return nil
}

func (f *fakeBookings) DeleteTx(ctx context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) error {
	return f.Delete(ctx, filter)
}

type fakeRooms struct {
	table[roomModel.Room]
}

func (f *fakeRooms) Insert(_ context.Context, room roomModel.Room) error {
	f.insert(room)

	return nil
}

func (f *fakeRooms) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (roomModel.Room, error) {
	return f.first(filter), nil
}

func (f *fakeRooms) GetForUpdateTx(ctx context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (roomModel.Room, error) {
	return f.Get(ctx, filter, columns...)
}

func (f *fakeRooms) GetAll(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]roomModel.Room, error) {
	return f.find(params, filter), nil
}

func (f *fakeRooms) Exist(_ context.Context, filter gDto.FilterGroup) (bool, error) {
	return len(f.find(gDto.QueryParams{}, filter)) > 0, nil
}

func (f *fakeRooms) Count(_ context.Context, filter gDto.FilterGroup) (int, error) {
	return len(f.find(gDto.QueryParams{}, filter)), nil
}

func (f *fakeRooms) Update(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
	f.update(fields, filter)

	return nil
}

func (f *fakeRooms) UpdateTx(ctx context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
	return f.Update(ctx, fields, filter)
}

func (f *fakeRooms) Delete(_ context.Context, filter gDto.FilterGroup) error {
	f.delete(filter)

	return nil
}

func (f *fakeRooms) FindDuplicateNumbers(_ context.Context) ([]roomModel.DuplicateNumber, error) {
	return nil, nil
}

func (f *fakeRooms) status(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, room := range f.rows {
		if room.ID == id {
			return room.Status
		}
	}

	return ""
}
