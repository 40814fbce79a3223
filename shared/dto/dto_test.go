package dto_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	at := time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  at,
		ModifiedAt: at.Add(48 * time.Hour),
		CreatedBy:  "front-desk",
		ModifiedBy: "night-audit",
	})

	assert.Equal(t, at.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, at.Add(48*time.Hour).Format(constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "front-desk", metadata.CreatedBy)
	assert.Equal(t, "night-audit", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	defaults := dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit}

	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "explicit paging and sort",
			query:    "page=2&limit=20&sort_by=check_in&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "check_in", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults when nothing is given",
			defaultRequest: true,
			expected:       defaults,
		},
		{
			name:     "no defaults when not requested",
			expected: dto.QueryParams{},
		},
		{
			name:           "non numeric page falls back",
			query:          "page=first",
			defaultRequest: true,
			expected:       defaults,
		},
		{
			name:           "zero and negative values fall back",
			query:          "page=0&limit=-10",
			defaultRequest: true,
			expected:       defaults,
		},
		{
			name:           "unknown sort direction is ignored",
			query:          "sort_by=number&sort_dir=sideways",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit, SortBy: "number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/bookings?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestFilter_StrictComparisons(t *testing.T) {
	less := dto.Filter{Field: "check_in", ArgName: "requested_check_out", Operator: dto.FilterOperatorLess, Value: 5, Table: "bookings"}
	greater := dto.Filter{Field: "check_out", ArgName: "requested_check_in", Operator: dto.FilterOperatorGreater, Value: 1, Table: "bookings"}

	where, args := less.GetWhereClause()
	assert.Equal(t, "bookings.check_in < :requested_check_out", where)
	assert.Equal(t, 5, args["requested_check_out"])

	where, args = greater.GetWhereClause()
	assert.Equal(t, "bookings.check_out > :requested_check_in", where)
	assert.Equal(t, 1, args["requested_check_in"])
}

func TestFilterGroup_SkipsEmptyParts(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_id", Operator: dto.FilterOperatorEq, Value: "r-1"},
			dto.FilterGroup{Operator: dto.FilterGroupOperatorOr},
			dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{}},
		},
	}

	where, args := group.GetWhereClause()
	assert.Equal(t, "(room_id = :room_id)", where)
	assert.Len(t, args, 1)
}

func TestFilter_InExpandsSlice(t *testing.T) {
	filter := dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"confirmed", "checked-in"}}

	where, args := filter.GetWhereClause()
	assert.Equal(t, "status IN (:status_0, :status_1) ", where)
	assert.Equal(t, "confirmed", args["status_0"])
	assert.Equal(t, "checked-in", args["status_1"])
}
