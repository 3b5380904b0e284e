package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightSummary), args.Error(1)
}

func (m *MockFlightRepository) GetDetail(ctx context.Context, id int64) (*domain.FlightDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightDetail), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	flight.ID = 1
	return args.Error(0)
}

func (m *MockFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context, filter domain.FlightFilter) ([]domain.FlightSummary, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.FlightSummary), args.Get(1).(int64), args.Error(2)
}

func (m *MockCache) SetFlights(ctx context.Context, gen int64, filter domain.FlightFilter, flights []domain.FlightSummary) error {
	args := m.Called(ctx, gen, filter, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func sampleFlights() []domain.FlightSummary {
	return []domain.FlightSummary{
		{
			ID:               4,
			Route:            "route_start - route_end",
			AirplaneName:     "name",
			DepartureTime:    time.Date(2022, 6, 2, 14, 0, 0, 0, time.UTC),
			ArrivalTime:      time.Date(2022, 6, 2, 21, 0, 0, 0, time.UTC),
			AirplaneCapacity: 90,
			TicketsAvailable: 90,
		},
	}
}

func newService(repo *MockFlightRepository, cache FlightCache) *FlightService {
	log, _ := test.NewNullLogger()
	return NewFlightService(repo, cache, log)
}

func TestFlightService_List_CacheMiss(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := newService(mockRepo, mockCache)

	ctx := context.Background()
	routeID := int64(2)
	filter := domain.FlightFilter{RouteID: &routeID}
	flights := sampleFlights()

	mockCache.On("GetFlights", ctx, filter).Return(nil, int64(3), nil).Once()
	mockRepo.On("List", ctx, filter).Return(flights, nil).Once()
	mockCache.On("SetFlights", ctx, int64(3), filter, flights).Return(nil).Once()

	result, err := service.List(ctx, filter)

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := newService(mockRepo, mockCache)

	ctx := context.Background()
	flights := sampleFlights()

	mockCache.On("GetFlights", ctx, domain.FlightFilter{}).Return(flights, int64(0), nil).Once()

	result, err := service.List(ctx, domain.FlightFilter{})

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestFlightService_List_CacheErrorFallsBackToRepository(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := newService(mockRepo, mockCache)

	ctx := context.Background()
	flights := sampleFlights()

	mockCache.On("GetFlights", ctx, domain.FlightFilter{}).Return(nil, int64(0), errors.New("redis down")).Once()
	mockRepo.On("List", ctx, domain.FlightFilter{}).Return(flights, nil).Once()

	result, err := service.List(ctx, domain.FlightFilter{})

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	mockCache.AssertNotCalled(t, "SetFlights", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFlightService_List_CacheWriteErrorIsLogged(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	log, hook := test.NewNullLogger()
	service := NewFlightService(mockRepo, mockCache, log)

	ctx := context.Background()
	flights := sampleFlights()

	mockCache.On("GetFlights", ctx, domain.FlightFilter{}).Return(nil, int64(1), nil).Once()
	mockRepo.On("List", ctx, domain.FlightFilter{}).Return(flights, nil).Once()
	mockCache.On("SetFlights", ctx, int64(1), domain.FlightFilter{}, flights).Return(errors.New("redis down")).Once()

	result, err := service.List(ctx, domain.FlightFilter{})

	assert.NoError(t, err)
	assert.Equal(t, flights, result)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "write flights cache", hook.LastEntry().Message)
}

func TestFlightService_List_NoCache(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := newService(mockRepo, nil)

	ctx := context.Background()
	mockRepo.On("List", ctx, domain.FlightFilter{}).Return(nil, errors.New("db down")).Once()

	result, err := service.List(ctx, domain.FlightFilter{})

	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestFlightService_GetByID(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := newService(mockRepo, nil)

	ctx := context.Background()
	detail := &domain.FlightDetail{ID: 4, TicketsAvailable: 89, TakenPlaces: []domain.Place{{Row: 1, Seat: 1}}}
	mockRepo.On("GetDetail", ctx, int64(4)).Return(detail, nil).Once()
	mockRepo.On("GetDetail", ctx, int64(5)).Return(nil, domain.ErrNotFound).Once()

	result, err := service.GetByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, detail, result)

	_, err = service.GetByID(ctx, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlightService_Create(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := newService(mockRepo, mockCache)

	ctx := context.Background()
	input := FlightInput{
		AirplaneID:    1,
		RouteID:       2,
		DepartureTime: time.Date(2022, 6, 2, 14, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2022, 6, 2, 21, 0, 0, 0, time.UTC),
		CrewIDs:       []int64{3},
	}

	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Flight")).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	flight, err := service.Create(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, int64(1), flight.ID)
	assert.Equal(t, []int64{3}, flight.CrewIDs)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_Create_ValidationErrors(t *testing.T) {
	departure := time.Date(2022, 6, 2, 14, 0, 0, 0, time.UTC)
	arrival := time.Date(2022, 6, 2, 21, 0, 0, 0, time.UTC)

	testCases := []struct {
		name        string
		input       FlightInput
		expectedErr string
	}{
		{name: "without airplane", input: FlightInput{RouteID: 1, DepartureTime: departure, ArrivalTime: arrival}, expectedErr: "airplane is required"},
		{name: "without route", input: FlightInput{AirplaneID: 1, DepartureTime: departure, ArrivalTime: arrival}, expectedErr: "route is required"},
		{name: "without date", input: FlightInput{AirplaneID: 1, RouteID: 1, ArrivalTime: arrival}, expectedErr: "departure_time is required"},
		{name: "without arrival", input: FlightInput{AirplaneID: 1, RouteID: 1, DepartureTime: departure}, expectedErr: "arrival_time is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &MockFlightRepository{}
			service := newService(mockRepo, nil)

			flight, err := service.Create(context.Background(), tc.input)

			assert.Nil(t, flight)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tc.expectedErr)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestFlightService_Update(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := newService(mockRepo, mockCache)

	ctx := context.Background()
	input := FlightInput{
		AirplaneID:    1,
		RouteID:       2,
		DepartureTime: time.Date(2023, 6, 2, 14, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2023, 6, 2, 21, 0, 0, 0, time.UTC),
	}

	isFlight := mock.MatchedBy(func(f *domain.Flight) bool { return f.ID == 9 && f.RouteID == 2 })
	mockRepo.On("Update", ctx, isFlight).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	flight, err := service.Update(ctx, 9, input)

	require.NoError(t, err)
	assert.Equal(t, input.DepartureTime, flight.DepartureTime)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_Delete(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := newService(mockRepo, mockCache)

	ctx := context.Background()
	mockRepo.On("Delete", ctx, int64(1)).Return(nil).Once()
	mockRepo.On("Delete", ctx, int64(1001)).Return(domain.ErrNotFound).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	assert.NoError(t, service.Delete(ctx, 1))
	assert.ErrorIs(t, service.Delete(ctx, 1001), domain.ErrNotFound)
	mockCache.AssertExpectations(t)
}
