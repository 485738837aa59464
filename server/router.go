package server

import (
	"net/http"
	"time"

	httpHandler "creedava-api/interfaces/http"
	"creedava-api/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	linkedInHandler httpHandler.ILinkedInHandler,
	leadHandler httpHandler.ILeadHandler,
	chatHandler httpHandler.IChatHandler,
	socialPostHandler httpHandler.ISocialPostHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://creedava.com", "https://www.creedava.com", "http://localhost:3000", "http://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Public site endpoints. The callback must stay public; LinkedIn's
	// redirect carries no bearer token.
	router.GET("/linkedin-connect", linkedInHandler.Connect)
	router.GET("/linkedin-auth", linkedInHandler.Callback)
	router.POST("/linkedin-auth", linkedInHandler.Callback)
	router.GET("/linkedin-posts", linkedInHandler.GetPosts)
	router.POST("/contact", leadHandler.Capture)
	router.POST("/chat", chatHandler.Message)

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Admin API.
	api := router.Group("api")
	api.Use(middleware.Auth())

	api.GET("/leads", leadHandler.List)
	api.GET("/leads/:id", leadHandler.GetByID)
	api.PATCH("/leads/:id", leadHandler.Update)
	api.DELETE("/leads/:id", leadHandler.Delete)
	api.POST("/leads/export", leadHandler.Export)

	api.POST("/social-posts", socialPostHandler.Schedule)
	api.GET("/social-posts", socialPostHandler.List)
	api.POST("/social-posts/process", socialPostHandler.ProcessDue)

	return router
}
