package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/tourtrek/config"
	"github.com/Domenick1991/tourtrek/internal/auth"
	"github.com/Domenick1991/tourtrek/internal/domain"
	"github.com/Domenick1991/tourtrek/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, user domain.User) (*domain.InsertResult, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InsertResult), args.Error(1)
}

func (m *MockUserUseCase) Role(ctx context.Context, email string) (domain.Role, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.Role), args.Error(1)
}

type MockPackageUseCase struct {
	mock.Mock
}

func (m *MockPackageUseCase) List(ctx context.Context, search string) ([]domain.TourPackage, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TourPackage), args.Error(1)
}

func (m *MockPackageUseCase) Featured(ctx context.Context) ([]domain.TourPackage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TourPackage), args.Error(1)
}

func (m *MockPackageUseCase) Get(ctx context.Context, id string) (*domain.TourPackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TourPackage), args.Error(1)
}

func (m *MockPackageUseCase) ListByGuide(ctx context.Context, guideEmail string) ([]domain.TourPackage, error) {
	args := m.Called(ctx, guideEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TourPackage), args.Error(1)
}

func (m *MockPackageUseCase) Create(ctx context.Context, pkg domain.TourPackage) (*domain.InsertResult, error) {
	args := m.Called(ctx, pkg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InsertResult), args.Error(1)
}

func (m *MockPackageUseCase) Update(ctx context.Context, id string, update domain.PackageUpdate) (*domain.UpdateResult, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UpdateResult), args.Error(1)
}

func (m *MockPackageUseCase) Delete(ctx context.Context, id string) (*domain.DeleteResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeleteResult), args.Error(1)
}

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Create(ctx context.Context, b domain.Booking) (*booking.CreateResult, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.CreateResult), args.Error(1)
}

func (m *MockBookingUseCase) ListByBuyer(ctx context.Context, buyerEmail string) ([]domain.Booking, error) {
	args := m.Called(ctx, buyerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) UpdateStatus(ctx context.Context, id, buyerEmail string, status domain.BookingStatus) (*domain.UpdateResult, error) {
	args := m.Called(ctx, id, buyerEmail, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UpdateResult), args.Error(1)
}

type testServer struct {
	router   *gin.Engine
	users    *MockUserUseCase
	packages *MockPackageUseCase
	bookings *MockBookingUseCase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer := auth.NewIssuer(testSecret, time.Hour)
	s := &testServer{
		users:    &MockUserUseCase{},
		packages: &MockPackageUseCase{},
		bookings: &MockBookingUseCase{},
	}
	s.router = NewRouter(config.HTTPConfig{
		AllowedOrigins: []string{"http://localhost:5173"},
		Swagger:        true,
	}, zerolog.Nop(), Services{
		Issuer:   issuer,
		Verifier: issuer,
		Users:    s.users,
		Packages: s.packages,
		Bookings: s.bookings,
	})
	return s
}

func tokenFor(t *testing.T, email string) string {
	t.Helper()
	token, err := auth.NewIssuer(testSecret, time.Hour).Issue(map[string]any{"email": email})
	require.NoError(t, err)
	return token
}

func (s *testServer) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
