package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/jmliang/coursenotes/internal/ai"
	"github.com/jmliang/coursenotes/internal/course"
	"github.com/jmliang/coursenotes/internal/extract"
	"github.com/jmliang/coursenotes/internal/httpapi/middleware"
	"github.com/jmliang/coursenotes/internal/session"
)

// CreateSession mints a new interactive session and the bearer token that
// identifies it on every later call.
func (h *Handler) CreateSession(c *gin.Context) {
	sid := ulid.Make().String()

	token, err := middleware.MintSessionToken(h.Cfg.SessionJWTSecret, sid)
	if err != nil {
		log.Printf("[CreateSession] mint token: %v", err)
		fail(c, http.StatusInternalServerError, 50001, "failed to create session")
		return
	}

	h.Svc.Session(sid)

	ok(c, gin.H{
		"session_id": sid,
		"token":      token,
	})
}

// EndSession discards the caller's in-memory session state. The token itself
// simply stops resolving to anything; a later call recreates a fresh session.
func (h *Handler) EndSession(c *gin.Context) {
	id := c.GetString(middleware.SessionIDKey)
	if id == "" {
		fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	h.Svc.Drop(id)
	ok(c, gin.H{"ended": true})
}

func (h *Handler) GetSessionState(c *gin.Context) {
	sess, found := h.sessionFromContext(c)
	if !found {
		fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}
	ok(c, sess.Snapshot())
}

type sendMessageReq struct {
	Message string `json:"message" binding:"required"`
}

func (h *Handler) SendChatMessage(c *gin.Context) {
	sess, found := h.sessionFromContext(c)
	if !found {
		fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	reply, err := h.Svc.SendPrompt(c.Request.Context(), sess, req.Message)
	if err != nil {
		if errors.Is(err, ai.ErrEmptyPrompt) {
			fail(c, http.StatusBadRequest, 10002, "message is empty")
			return
		}
		log.Printf("[SendChatMessage] provider error: %v", err)
		fail(c, http.StatusBadGateway, 50201, err.Error())
		return
	}

	ok(c, gin.H{"reply": reply})
}

// Summarize accepts uploaded lesson files as multipart form data under the
// "files" field, extracts them in upload order, and returns the generated
// summary. Unreadable files come back as warnings, not errors.
func (h *Handler) Summarize(c *gin.Context) {
	sess, found := h.sessionFromContext(c)
	if !found {
		fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		fail(c, http.StatusBadRequest, 10003, "invalid multipart form")
		return
	}

	var files []extract.File
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			fail(c, http.StatusBadRequest, 10004, "unreadable upload: "+fh.Filename)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			fail(c, http.StatusBadRequest, 10004, "unreadable upload: "+fh.Filename)
			return
		}
		files = append(files, extract.File{Name: fh.Filename, Data: data})
	}
	if len(files) == 0 {
		fail(c, http.StatusBadRequest, 10005, "no files uploaded")
		return
	}

	summary, warnings, err := h.Svc.SummarizeDocuments(c.Request.Context(), sess, files)
	if err != nil {
		if errors.Is(err, session.ErrNoDocuments) {
			fail(c, http.StatusUnprocessableEntity, 42201, "no readable documents in upload")
			return
		}
		log.Printf("[Summarize] provider error: %v", err)
		fail(c, http.StatusBadGateway, 50201, err.Error())
		return
	}

	ok(c, gin.H{
		"summary":  summary,
		"warnings": warnings,
	})
}

type saveCourseReq struct {
	CourseName string `json:"course_name" binding:"required"`
}

func (h *Handler) SaveCourse(c *gin.Context) {
	sess, found := h.sessionFromContext(c)
	if !found {
		fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	var req saveCourseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	err := h.Svc.SaveCourse(c.Request.Context(), sess, req.CourseName)
	switch {
	case errors.Is(err, session.ErrNothingToSave):
		// Not an error: the save is skipped and the caller is told why.
		ok(c, gin.H{"saved": false, "warning": "nothing to save"})
	case errors.Is(err, course.ErrEmptyName):
		fail(c, http.StatusBadRequest, 10006, "course name required")
	case err != nil:
		log.Printf("[SaveCourse] store error: %v", err)
		fail(c, http.StatusInternalServerError, 50002, "failed to save course")
	default:
		ok(c, gin.H{"saved": true, "course_name": req.CourseName})
	}
}

func (h *Handler) LoadCourse(c *gin.Context) {
	sess, found := h.sessionFromContext(c)
	if !found {
		fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	name := c.Param("name")
	if err := h.Svc.LoadCourse(c.Request.Context(), sess, name); err != nil {
		if errors.Is(err, course.ErrNotFound) {
			fail(c, http.StatusNotFound, 40401, "course not found")
			return
		}
		log.Printf("[LoadCourse] store error: %v", err)
		fail(c, http.StatusInternalServerError, 50002, "failed to load course")
		return
	}

	ok(c, sess.Snapshot())
}

func (h *Handler) ListCourses(c *gin.Context) {
	names, err := h.Svc.ListCourses(c.Request.Context())
	if err != nil {
		log.Printf("[ListCourses] store error: %v", err)
		fail(c, http.StatusInternalServerError, 50002, "failed to list courses")
		return
	}
	if names == nil {
		names = []string{}
	}
	ok(c, gin.H{"courses": names})
}

func (h *Handler) DeleteCourse(c *gin.Context) {
	sess, found := h.sessionFromContext(c)
	if !found {
		fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	name := c.Param("name")
	if err := h.Svc.DeleteCourse(c.Request.Context(), sess, name); err != nil {
		log.Printf("[DeleteCourse] store error: %v", err)
		fail(c, http.StatusInternalServerError, 50002, "failed to delete course")
		return
	}

	ok(c, gin.H{"deleted": name})
}

func (h *Handler) ClearSession(c *gin.Context) {
	sess, found := h.sessionFromContext(c)
	if !found {
		fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	h.Svc.Clear(sess)
	ok(c, sess.Snapshot())
}
