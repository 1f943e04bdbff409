package api

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/Domenick1991/tourtrek/config"
	"github.com/Domenick1991/tourtrek/internal/service/booking"
	"github.com/Domenick1991/tourtrek/internal/service/packages"
	"github.com/Domenick1991/tourtrek/internal/service/users"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

const livenessMessage = "Tour Package Server is running!"

//go:embed openapi.json
var openAPIDoc []byte

type Services struct {
	Issuer   TokenIssuer
	Verifier TokenVerifier
	Users    users.UserUseCase
	Packages packages.PackageUseCase
	Bookings booking.BookingUseCase
}

func NewRouter(cfg config.HTTPConfig, log zerolog.Logger, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(log))

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
			ExposeHeaders:    []string{requestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, livenessMessage)
	})

	if cfg.Swagger {
		router.GET("/docs/openapi.json", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", openAPIDoc)
		})
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/openapi.json"))))
	}

	root := router.Group("/")
	guard := RequireAuth(svc.Verifier)

	NewAuthHandler(svc.Issuer).Register(root)
	NewUserHandler(svc.Users).Register(root, guard)
	NewPackageHandler(svc.Packages).Register(root, guard)
	NewBookingHandler(svc.Bookings).Register(root, guard)

	return router
}
