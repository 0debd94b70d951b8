package services

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Sophavisnuka/real-estate-agency/internal/cache"
	"github.com/Sophavisnuka/real-estate-agency/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeService_DeleteUnassignsRequests(t *testing.T) {
	db, mock := newMockDB(t)
	c := &recordingCache{}
	svc := NewEmployeeService(db, c, time.Minute)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "employee_auths" WHERE employee_id = $1`)).
		WithArgs(4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Requests still in the assigned state go back to pending; completed and
	// cancelled ones keep their status.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "visit_requests" SET "assigned_agency_id"=$1,` +
		`"status"=CASE WHEN status = $2 THEN $3 ELSE status END,"updated_at"=$4 WHERE assigned_agency_id = $5`)).
		WithArgs(nil, "assigned", "pending", sqlmock.AnyArg(), 4).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "employees"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(t.Context(), 4))
	assert.ElementsMatch(t, []string{cache.KeyAllEmployees, cache.EmployeeKey(4)}, c.deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeService_CreateParsesDates(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewEmployeeService(db, nil, time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "employees"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	e, err := svc.Create(t.Context(), &dto.EmployeeRequest{
		FirstName: "Vanna",
		LastName:  "Chea",
		DOB:       "1994-07-21",
		HireDate:  "2024-01-15T00:00:00Z",
		Salary:    1500,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(12), e.ID)
	require.NotNil(t, e.DateOfBirth)
	assert.Equal(t, 1994, e.DateOfBirth.Year())
	require.NotNil(t, e.HireDate)
	assert.Equal(t, time.January, e.HireDate.Month())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeService_CreateValidates(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewEmployeeService(db, nil, time.Minute)

	_, err := svc.Create(t.Context(), &dto.EmployeeRequest{FirstName: "Vanna"})
	assert.ErrorIs(t, err, ErrInvalidEmployee)

	_, err = svc.Create(t.Context(), &dto.EmployeeRequest{FirstName: "Vanna", LastName: "Chea", DOB: "21/07/1994"})
	assert.ErrorIs(t, err, ErrInvalidDate)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeService_ProfileNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewEmployeeService(db, nil, time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "employees" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "profile"}))

	_, err := svc.Profile(t.Context(), 3)

	assert.ErrorIs(t, err, ErrEmployeeNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
