package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var errEmailRequired = errors.New("email is required")

type TokenIssuer interface {
	Issue(identity map[string]any) (string, error)
}

type AuthHandler struct {
	issuer TokenIssuer
}

type tokenResponse struct {
	Token string `json:"token"`
}

func NewAuthHandler(issuer TokenIssuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/jwt", h.issue)
}

// issue signs whatever identity the caller sends. There is no credential check.
func (h *AuthHandler) issue(c *gin.Context) {
	var identity map[string]any
	if err := c.ShouldBindJSON(&identity); err != nil {
		badRequest(c, err)
		return
	}
	if email, _ := identity["email"].(string); email == "" {
		badRequest(c, errEmailRequired)
		return
	}

	token, err := h.issuer.Issue(identity)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{Token: token})
}
