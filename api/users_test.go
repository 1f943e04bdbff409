package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Domenick1991/tourtrek/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserHandler_create(t *testing.T) {
	s := newTestServer(t)
	s.users.On("Register", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "a@x.com" && u.Name == "A" && u.Extra["photo"] == "p.png"
	})).Return(&domain.InsertResult{Acknowledged: true, InsertedID: "u1"}, nil).Once()
	s.users.On("Register", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicate).Once()

	body := map[string]any{"email": "a@x.com", "name": "A", "photo": "p.png"}

	w := s.do(http.MethodPost, "/users", body, "")
	assert.Equal(t, http.StatusOK, w.Code)
	first := decode(t, w)
	assert.Equal(t, true, first["acknowledged"])
	assert.Equal(t, "u1", first["insertedId"])

	w = s.do(http.MethodPost, "/users", body, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"user already exists","insertedId":null}`, w.Body.String())

	s.users.AssertExpectations(t)
}

func TestUserHandler_create_Errors(t *testing.T) {
	s := newTestServer(t)
	s.users.On("Register", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	w := s.do(http.MethodPost, "/users", "[", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/users", map[string]any{"email": "a@x.com"}, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "connection refused", decode(t, w)["error"])
}

func TestUserHandler_role_NotFound(t *testing.T) {
	s := newTestServer(t)
	s.users.On("Role", mock.Anything, "a@x.com").Return(domain.Role(""), domain.ErrNotFound)

	w := s.do(http.MethodGet, "/users/role/a@x.com", nil, tokenFor(t, "a@x.com"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "user not found", decode(t, w)["message"])
}
