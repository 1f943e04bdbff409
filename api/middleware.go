package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/Domenick1991/tourtrek/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader = "X-Request-ID"
	identityKey     = "identity"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

// RequestID echoes X-Request-ID or assigns a fresh one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Set(requestIDHeader, id)
		c.Next()
	}
}

// AccessLog attaches a request-scoped logger to the request context and
// writes one line per finished request.
func AccessLog(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		log := base.With().
			Str("request_id", c.GetString(requestIDHeader)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Logger()
		c.Request = c.Request.WithContext(log.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		event := zerolog.Ctx(c.Request.Context()).Info()
		if status >= http.StatusInternalServerError {
			event = zerolog.Ctx(c.Request.Context()).Error()
		}
		event.Int("status", status).Dur("latency", time.Since(start)).Msg("request")
	}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's identity for handlers.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}

		c.Set(identityKey, identity)
		ctx := c.Request.Context()
		log := zerolog.Ctx(ctx).With().Str("email", identity.Email).Logger()
		c.Request = c.Request.WithContext(log.WithContext(ctx))
		c.Next()
	}
}

func identityFrom(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*auth.Identity)
	return identity
}

// requireOwner aborts with 403 unless the caller's email equals email.
// Roles do not bypass the check.
func requireOwner(c *gin.Context, email string) bool {
	identity := identityFrom(c)
	if identity == nil || identity.Email != email {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return false
	}
	return true
}

func internalError(c *gin.Context, err error) {
	zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
