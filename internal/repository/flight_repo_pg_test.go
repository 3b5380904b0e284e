package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewFlightRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewFlightRepository(pool)
	assert.NotNil(t, repo)
}

func TestBuildFlightListQuery_NoFilter(t *testing.T) {
	query, args := buildFlightListQuery(domain.FlightFilter{})

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "COUNT(t.id)")
	assert.Contains(t, query, "GROUP BY f.id")
	assert.Empty(t, args)
}

func TestBuildFlightListQuery_DateAndRoute(t *testing.T) {
	date := time.Date(2022, 6, 2, 15, 30, 0, 0, time.UTC)
	routeID := int64(7)

	query, args := buildFlightListQuery(domain.FlightFilter{DepartureDate: &date, RouteID: &routeID})

	assert.Contains(t, query, "f.departure_time >= $1 AND f.departure_time < $2")
	assert.Contains(t, query, "f.route_id = $3")
	assert.Equal(t, []any{
		time.Date(2022, 6, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 6, 3, 0, 0, 0, 0, time.UTC),
		int64(7),
	}, args)
}

func TestBuildFlightListQuery_RouteOnly(t *testing.T) {
	routeID := int64(3)

	query, args := buildFlightListQuery(domain.FlightFilter{RouteID: &routeID})

	assert.Contains(t, query, "WHERE f.route_id = $1")
	assert.Equal(t, []any{int64(3)}, args)
}

type MockExecer struct {
	mock.Mock
}

func (m *MockExecer) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return pgconn.CommandTag{}, args.Error(0)
}

func TestClearCrew_WrapsDriverError(t *testing.T) {
	tx := &MockExecer{}
	tx.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("conn closed")).Once()

	err := clearCrew(context.Background(), tx, 3)

	assert.EqualError(t, err, "clear flight crew: conn closed")
}

func TestReplaceCrew_MapsUnknownCrew(t *testing.T) {
	tx := &MockExecer{}
	tx.On("Exec", mock.Anything, mock.Anything, []any{int64(3), []int64{99}}).
		Return(&pgconn.PgError{Code: pgForeignKeyViolation}).Once()

	err := replaceCrew(context.Background(), tx, 3, []int64{99})

	assert.ErrorIs(t, err, domain.ErrInvalidReference)
	assert.Contains(t, err.Error(), "assign flight crew")
	tx.AssertExpectations(t)
}

func TestReplaceCrew_NoCrew(t *testing.T) {
	tx := &MockExecer{}

	assert.NoError(t, replaceCrew(context.Background(), tx, 3, nil))
	tx.AssertNotCalled(t, "Exec", mock.Anything, mock.Anything, mock.Anything)
}
