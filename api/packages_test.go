package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Domenick1991/tourtrek/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPackageHandler_list(t *testing.T) {
	s := newTestServer(t)
	s.packages.On("List", mock.Anything, "Sea Side").Return([]domain.TourPackage{{ID: "p1", Extra: domain.Fields{"tour_name": "Sea side trip"}}}, nil)
	s.packages.On("List", mock.Anything, "").Return(nil, nil)

	w := s.do(http.MethodGet, "/packages?search=Sea+Side", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tour_name":"Sea side trip"`)

	w = s.do(http.MethodGet, "/packages", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestPackageHandler_featured(t *testing.T) {
	s := newTestServer(t)
	s.packages.On("Featured", mock.Anything).Return([]domain.TourPackage{{ID: "p1"}, {ID: "p2"}}, nil)

	w := s.do(http.MethodGet, "/packages-featured", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"_id":"p2"`)
}

func TestPackageHandler_get(t *testing.T) {
	s := newTestServer(t)
	s.packages.On("Get", mock.Anything, "p1").Return(&domain.TourPackage{ID: "p1", BookingCount: 3}, nil)
	s.packages.On("Get", mock.Anything, "missing").Return(nil, nil)
	s.packages.On("Get", mock.Anything, "bad").Return(nil, domain.ErrInvalidID)

	w := s.do(http.MethodGet, "/packages/p1", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bookingCount":3`)

	w = s.do(http.MethodGet, "/packages/missing", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	w = s.do(http.MethodGet, "/packages/bad", nil, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, domain.ErrInvalidID.Error(), decode(t, w)["error"])
}

func TestPackageHandler_listByGuide(t *testing.T) {
	s := newTestServer(t)
	s.packages.On("ListByGuide", mock.Anything, "g@x.com").Return([]domain.TourPackage{{ID: "p1", GuideEmail: "g@x.com"}}, nil)

	w := s.do(http.MethodGet, "/my-packages/g@x.com", nil, tokenFor(t, "g@x.com"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"guide_email":"g@x.com"`)
}

// Package bodies are stored as sent: form-style strings and unknown fields pass through.
func TestPackageHandler_create(t *testing.T) {
	s := newTestServer(t)
	s.packages.On("Create", mock.Anything, mock.MatchedBy(func(p domain.TourPackage) bool {
		return p.GuideEmail == "g@x.com" &&
			p.Extra["tour_name"] == "Sea" &&
			p.Extra["price"] == "1200" &&
			p.Extra["duration"] == float64(3) &&
			p.Extra["tour_type"] == "hill"
	})).Return(&domain.InsertResult{Acknowledged: true, InsertedID: "p1"}, nil)

	w := s.do(http.MethodPost, "/packages", map[string]any{
		"tour_name":   "Sea",
		"price":       "1200",
		"duration":    3,
		"tour_type":   "hill",
		"guide_email": "g@x.com",
	}, tokenFor(t, "g@x.com"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "p1", decode(t, w)["insertedId"])
	s.packages.AssertExpectations(t)
}

// Only whitelisted fields reach the service; absent ones stay nil.
func TestPackageHandler_update(t *testing.T) {
	s := newTestServer(t)
	var got domain.PackageUpdate
	s.packages.On("Update", mock.Anything, "p1", mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(2).(domain.PackageUpdate) }).
		Return(&domain.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil)

	w := s.do(http.MethodPut, "/packages/p1", map[string]any{
		"tour_name":    "Renamed",
		"price":        "99",
		"guide_email":  "evil@x.com",
		"bookingCount": 1000,
	}, tokenFor(t, "g@x.com"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["modifiedCount"])

	fields := got.Fields()
	assert.Len(t, fields, 8)
	assert.Equal(t, "Renamed", fields["tour_name"])
	assert.Equal(t, "99", fields["price"])
	assert.Nil(t, fields["image"])
	assert.NotContains(t, fields, "guide_email")
	assert.NotContains(t, fields, "bookingCount")
}

func TestPackageHandler_get_NullFields(t *testing.T) {
	s := newTestServer(t)
	s.packages.On("Get", mock.Anything, "p3").Return(&domain.TourPackage{
		ID:    "p3",
		Extra: domain.Fields{"tour_name": "Hill", "image": nil},
	}, nil)

	w := s.do(http.MethodGet, "/packages/p3", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"_id":"p3","tour_name":"Hill","image":null,"bookingCount":0}`, w.Body.String())
}

func TestPackageHandler_delete(t *testing.T) {
	s := newTestServer(t)
	s.packages.On("Delete", mock.Anything, "p1").Return(&domain.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil)
	s.packages.On("Delete", mock.Anything, "p2").Return(nil, errors.New("server selection timeout"))
	token := tokenFor(t, "g@x.com")

	w := s.do(http.MethodDelete, "/packages/p1", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, w.Body.String())

	w = s.do(http.MethodDelete, "/packages/p2", nil, token)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "server selection timeout", decode(t, w)["error"])
}
