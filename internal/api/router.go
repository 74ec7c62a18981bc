package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/shidoukh/shidoukh/internal/handlers"
	"github.com/shidoukh/shidoukh/internal/middleware"
	"github.com/shidoukh/shidoukh/internal/services"
	"github.com/shidoukh/shidoukh/internal/sessions"
	"github.com/shidoukh/shidoukh/pkg/response"
)

// Dependencies groups everything the router needs.
type Dependencies struct {
	DB        *gorm.DB
	Sessions  *sessions.Manager
	Auth      *services.AuthService
	Personnes *services.PersonneService
	Meetings  *services.MeetingService
}

// NewRouter assembles the gin engine: middleware chain, API routes and the
// operational endpoints.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.SessionGuard())

	authHandler := handlers.NewAuthHandler(deps.Auth, deps.Sessions)
	personneHandler := handlers.NewPersonneHandler(deps.Personnes)
	meetingHandler := handlers.NewMeetingHandler(deps.Meetings)
	communicationHandler := handlers.NewCommunicationHandler()
	pagesHandler := handlers.NewPagesHandler(deps.Sessions, deps.Personnes, deps.Meetings)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authHandler.Me)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/confirm-email", authHandler.ConfirmEmail)
			auth.POST("/confirm-email", authHandler.ConfirmEmail)
		}

		personnes := api.Group("/personnes")
		{
			personnes.GET("", personneHandler.List)
			personnes.POST("", personneHandler.Create)
			personnes.GET("/:id", personneHandler.Get)
			personnes.PUT("/:id", personneHandler.Update)
			personnes.DELETE("/:id", personneHandler.Delete)
		}

		meetings := api.Group("/meetings")
		{
			meetings.GET("", meetingHandler.List)
			meetings.POST("", meetingHandler.Create)
			meetings.GET("/:id", meetingHandler.Get)
			meetings.PUT("/:id", meetingHandler.Update)
			meetings.DELETE("/:id", meetingHandler.Delete)
		}

		api.GET("/communication/channels", communicationHandler.Channels)
		api.GET("/pages/home", pagesHandler.Home)
	}

	// Guarded page shells. The session guard has already redirected
	// visitors who should not be here.
	router.GET("/", pagesHandler.Home)
	router.GET("/personnes", pagesHandler.Personnes)
	router.GET("/meetings", pagesHandler.Meetings)
	router.GET("/communication/:channel", pagesHandler.CommunicationChannel)
	for _, page := range []string{"login", "register", "forgot-password", "reset-password", "confirm-email"} {
		router.GET("/auth/"+page, pagesHandler.AuthPage(page))
	}

	router.GET("/health", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response.Response{
			Success: false,
			Error: &response.ErrorInfo{
				Code:    "NOT_FOUND",
				Message: "Page introuvable",
			},
		})
	})

	return router
}
