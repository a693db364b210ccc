package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmliang/coursenotes/internal/config"
	"github.com/jmliang/coursenotes/internal/httpapi/handlers"
	"github.com/jmliang/coursenotes/internal/httpapi/middleware"
	"github.com/jmliang/coursenotes/internal/session"
)

func NewRouter(cfg config.Config, svc *session.Service) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": 40400, "message": "route not found", "data": nil})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"code": 40500, "message": "method not allowed", "data": nil})
	})

	h := handlers.NewHandler(cfg, svc)

	r.GET("/ping", h.Ping)
	r.POST("/sessions", h.CreateSession)

	authed := r.Group("/")
	authed.Use(middleware.SessionRequired(cfg.SessionJWTSecret))
	authed.GET("/session", h.GetSessionState)
	authed.DELETE("/session", h.EndSession)
	authed.POST("/session/clear", h.ClearSession)
	authed.POST("/chat/messages", h.SendChatMessage)
	authed.POST("/summarize", h.Summarize)
	authed.GET("/courses", h.ListCourses)
	authed.POST("/courses", h.SaveCourse)
	authed.POST("/courses/:name/load", h.LoadCourse)
	authed.DELETE("/courses/:name", h.DeleteCourse)

	return r
}
