package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmliang/coursenotes/internal/config"
	"github.com/jmliang/coursenotes/internal/httpapi/middleware"
	"github.com/jmliang/coursenotes/internal/session"
)

type Handler struct {
	Cfg config.Config
	Svc *session.Service
}

func NewHandler(cfg config.Config, svc *session.Service) *Handler {
	return &Handler{Cfg: cfg, Svc: svc}
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "ok",
		"data":    data,
	})
}

func fail(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
		"data":    nil,
	})
}

func (h *Handler) sessionFromContext(c *gin.Context) (*session.Session, bool) {
	id := c.GetString(middleware.SessionIDKey)
	if id == "" {
		return nil, false
	}
	return h.Svc.Session(id), true
}

func (h *Handler) Ping(c *gin.Context) {
	ok(c, gin.H{"pong": true})
}
