package services

import (
	"testing"

	"github.com/Sophavisnuka/real-estate-agency/internal/dto"
	"github.com/Sophavisnuka/real-estate-agency/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func queryFrom(values map[string]string) func(string, ...string) string {
	return func(key string, _ ...string) string { return values[key] }
}

func TestParseSearchFilter_Defaults(t *testing.T) {
	f := ParseSearchFilter(queryFrom(map[string]string{
		"page":     "0",
		"limit":    "abc",
		"minprice": "",
		"bedrooms": "x",
	}))

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, DefaultPageSize, f.Limit)
	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MaxPrice)
	assert.Nil(t, f.Bedrooms)
	assert.Equal(t, 0, f.Offset())
}

func TestParseSearchFilter_ClampsPage(t *testing.T) {
	f := ParseSearchFilter(queryFrom(map[string]string{
		"page":  "9223372036854775807",
		"limit": "100",
	}))

	assert.Equal(t, MaxPage, f.Page)
	assert.Equal(t, (MaxPage-1)*100, f.Offset())
	assert.Positive(t, f.Offset())
}

func TestParseSearchFilter_IgnoresNonFinitePrices(t *testing.T) {
	f := ParseSearchFilter(queryFrom(map[string]string{
		"minprice": "NaN",
		"maxprice": "+Inf",
	}))

	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MaxPrice)
}

func TestParseSearchFilter_Values(t *testing.T) {
	f := ParseSearchFilter(queryFrom(map[string]string{
		"province": " Phnom Penh ",
		"type":     "villa",
		"minprice": "100000",
		"maxprice": "250000.5",
		"bedrooms": "3",
		"search":   "  river ",
		"page":     "3",
		"limit":    "500",
	}))

	assert.Equal(t, "Phnom Penh", f.Province)
	assert.Equal(t, "villa", f.Type)
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, 100000.0, *f.MinPrice)
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, 250000.5, *f.MaxPrice)
	require.NotNil(t, f.Bedrooms)
	assert.Equal(t, 3, *f.Bedrooms)
	assert.Equal(t, "river", f.Search)
	assert.Equal(t, MaxPageSize, f.Limit)
	assert.Equal(t, 2*MaxPageSize, f.Offset())
}

func TestSearchFilter_ScopeSQL(t *testing.T) {
	db, _ := newMockDB(t)
	dry := db.Session(&gorm.Session{DryRun: true})

	minPrice, maxPrice, beds := 1000.0, 5000.0, 2
	f := SearchFilter{
		Province: "Siem Reap",
		Type:     "condo",
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		Bedrooms: &beds,
		Search:   "50%_off",
		Page:     1,
		Limit:    6,
		Statuses: []models.PropertyStatus{models.PropertyStatusAvailable},
	}

	var rows []dto.PropertySummary
	stmt := dry.Model(&models.Property{}).Scopes(f.Scope).Find(&rows).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `FROM "properties"`)
	assert.Contains(t, sql, "status = $1 AND province = $2 AND property_type = $3")
	assert.Contains(t, sql, "price >= $4 AND price <= $5 AND bedrooms = $6")
	assert.Contains(t, sql, "title ILIKE $7 OR city ILIKE $8 OR province ILIKE $9 OR property_type ILIKE $10 OR CAST(id AS TEXT) ILIKE $11")

	require.Len(t, stmt.Vars, 11)
	assert.Equal(t, models.PropertyStatusAvailable, stmt.Vars[0])
	assert.Equal(t, "Siem Reap", stmt.Vars[1])
	assert.Equal(t, 1000.0, stmt.Vars[3])
	assert.Equal(t, 5000.0, stmt.Vars[4])
	assert.Equal(t, `%50\%\_off%`, stmt.Vars[6])
}

func TestSearchFilter_NoFiltersNoWhere(t *testing.T) {
	db, _ := newMockDB(t)
	dry := db.Session(&gorm.Session{DryRun: true})

	var rows []dto.PropertySummary
	stmt := dry.Model(&models.Property{}).Scopes(SearchFilter{}.Scope).Find(&rows).Statement

	assert.NotContains(t, stmt.SQL.String(), "WHERE")
	assert.Empty(t, stmt.Vars)
}

func TestSearchFilter_MultipleStatuses(t *testing.T) {
	db, _ := newMockDB(t)
	dry := db.Session(&gorm.Session{DryRun: true})

	f := SearchFilter{Statuses: []models.PropertyStatus{models.PropertyStatusSold, models.PropertyStatusRented}}
	var rows []dto.PropertySummary
	stmt := dry.Model(&models.Property{}).Scopes(f.Scope).Find(&rows).Statement

	assert.Contains(t, stmt.SQL.String(), "status IN ($1,$2)")
}

func TestPropertyService_SearchQueryOrdersAndPages(t *testing.T) {
	db, _ := newMockDB(t)
	svc := NewPropertyService(db.Session(&gorm.Session{DryRun: true}), nil, 0)

	f := SearchFilter{Page: 2, Limit: 6}
	var rows []dto.PropertySummary
	sql := svc.searchQuery(t.Context(), f).Find(&rows).Statement.SQL.String()

	assert.Contains(t, sql, "ORDER BY listed_date DESC,id DESC")
	assert.Contains(t, sql, "LIMIT")
	assert.Contains(t, sql, "OFFSET")
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
