package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Sophavisnuka/real-estate-agency/internal/cache"
	"github.com/Sophavisnuka/real-estate-agency/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyService_CreateInsertsOneAmenity(t *testing.T) {
	db, mock := newMockDB(t)
	c := &recordingCache{}
	svc := NewPropertyService(db, c, time.Minute)
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "properties"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "property_images"`)).
		WithArgs(7, "https://img/1.jpg", 7, "https://img/2.jpg").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))

	amenityArgs := []driver.Value{7, true}
	for i := 0; i < 11; i++ {
		amenityArgs = append(amenityArgs, sqlmock.AnyArg())
	}
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "amenities"`)).
		WithArgs(amenityArgs...).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	p, err := svc.Create(t.Context(), &dto.CreatePropertyRequest{
		Title:        "Riverside villa",
		PropertyType: "villa",
		Province:     "Phnom Penh",
		Price:        250000,
		Bedrooms:     4,
		Images:       []string{"https://img/1.jpg", " ", "https://img/2.jpg"},
		Amenities:    dto.AmenityFlags{SwimmingPool: true, Garden: true},
	})

	require.NoError(t, err)
	assert.Equal(t, uint(7), p.ID)
	require.NotNil(t, p.Amenity)
	assert.Equal(t, uint(7), p.Amenity.PropertyID)
	assert.True(t, p.Amenity.SwimmingPool)
	assert.Len(t, p.Images, 2)
	assert.Equal(t, "available", string(p.Status))
	assert.ElementsMatch(t, []string{cache.KeyPropertyCount, cache.KeyTopProperties}, c.deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyService_CreateRollsBackOnAmenityFailure(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPropertyService(db, nil, time.Minute)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "properties"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "amenities"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := svc.Create(t.Context(), &dto.CreatePropertyRequest{
		Title: "Flat", PropertyType: "apartment", Province: "Kampot", Price: 1,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create amenity")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyService_CreateValidates(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPropertyService(db, nil, time.Minute)

	_, err := svc.Create(t.Context(), &dto.CreatePropertyRequest{Title: "  ", PropertyType: "villa", Province: "x"})
	assert.ErrorIs(t, err, ErrInvalidProperty)

	_, err = svc.Create(t.Context(), &dto.CreatePropertyRequest{Title: "a", PropertyType: "villa", Province: "x", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidProperty)

	_, err = svc.Create(t.Context(), &dto.CreatePropertyRequest{Title: "a", PropertyType: "villa", Province: "x", Price: 1e308})
	assert.ErrorIs(t, err, ErrAmountOutOfRange)

	_, err = svc.Create(t.Context(), &dto.CreatePropertyRequest{Title: "a", PropertyType: "villa", Province: "x", Price: 10, Size: 1e8})
	assert.ErrorIs(t, err, ErrAmountOutOfRange)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyService_UpdateRejectsUnknownStatus(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPropertyService(db, nil, time.Minute)

	status := "demolished"
	err := svc.Update(t.Context(), 1, &dto.UpdatePropertyRequest{Status: &status})

	assert.ErrorIs(t, err, ErrInvalidPropertyStatus)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyService_UpdateRejectsOversizedAmounts(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPropertyService(db, nil, time.Minute)

	size := dto.Number(2e8)
	err := svc.Update(t.Context(), 1, &dto.UpdatePropertyRequest{Size: &size})
	assert.ErrorIs(t, err, ErrAmountOutOfRange)

	price := dto.Number(999999999999.999)
	err = svc.Update(t.Context(), 1, &dto.UpdatePropertyRequest{Price: &price})
	assert.ErrorIs(t, err, ErrAmountOutOfRange)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyService_UpdateMissingAmenityRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPropertyService(db, nil, time.Minute)

	title := "Renamed"
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "properties"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "properties" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "amenities"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "property_id"}))
	mock.ExpectRollback()

	err := svc.Update(t.Context(), 4, &dto.UpdatePropertyRequest{Title: &title})

	assert.ErrorIs(t, err, ErrAmenityNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyService_UpdateReplacesImages(t *testing.T) {
	db, mock := newMockDB(t)
	c := &recordingCache{}
	svc := NewPropertyService(db, c, time.Minute)

	pool := true
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "properties"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "amenities"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "property_id"}).AddRow(2, 4))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "amenities" SET "swimming_pool"=$1`)).
		WithArgs(true, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "property_images" WHERE property_id = $1`)).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "property_images"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectCommit()

	err := svc.Update(t.Context(), 4, &dto.UpdatePropertyRequest{
		Images:       []string{"https://img/new.jpg"},
		AmenityPatch: dto.AmenityPatch{SwimmingPool: &pool},
	})

	require.NoError(t, err)
	assert.Contains(t, c.deleted, cache.PropertyKey(4))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyService_DeleteCascades(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPropertyService(db, nil, time.Minute)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "property_images"`)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "amenities"`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "visit_requests"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "properties"`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := svc.Delete(t.Context(), 99)

	assert.ErrorIs(t, err, ErrPropertyNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyService_GetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPropertyService(db, nil, time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "properties"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(t.Context(), 5)

	assert.ErrorIs(t, err, ErrPropertyNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyService_SearchReturnsMeta(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPropertyService(db, nil, time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "properties" WHERE status = $1`)).
		WithArgs("available").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(13))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "properties" WHERE status = $1 ORDER BY listed_date DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "price"}).
			AddRow(1, "A", 10).
			AddRow(2, "B", 20))

	rows, meta, err := svc.Search(t.Context(), SearchFilter{Page: 2, Limit: 6})

	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, int64(13), meta.Total)
	assert.Equal(t, 3, meta.PageCount)
	assert.True(t, meta.HasPrev)
	assert.True(t, meta.HasNext)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyService_SimilarEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPropertyService(db, nil, time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id","province","property_type" FROM "properties"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "province", "property_type"}).AddRow(3, "Kep", "villa"))
	mock.ExpectQuery(`FROM "properties" WHERE \(?province = \$1 AND property_type = \$2 AND id <> \$3`).
		WithArgs("Kep", "villa", 3, "available").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Similar(t.Context(), 3)

	assert.ErrorIs(t, err, ErrNoSimilarProperty)
	require.NoError(t, mock.ExpectationsWereMet())
}
