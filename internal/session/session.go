// Package session keeps the three representations of conversational state
// consistent: the visible transcript and summary, the persisted course
// record, and the completion client's internal history.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jmliang/coursenotes/internal/ai"
	"github.com/jmliang/coursenotes/internal/course"
	"github.com/jmliang/coursenotes/internal/extract"
)

const DefaultCourseName = "General"

var (
	ErrNothingToSave = errors.New("session: nothing to save")
	ErrNoDocuments   = errors.New("session: no readable documents")
)

// Session is the ephemeral state of one interactive UI session. Nothing in it
// persists until an explicit save.
type Session struct {
	mu         sync.Mutex
	courseName string
	messages   []ai.Message
	summary    string
	chat       *ai.Chat
}

// State is a read-only snapshot of a session for rendering.
type State struct {
	CourseName string       `json:"course_name"`
	Summary    string       `json:"summary"`
	Messages   []ai.Message `json:"messages"`
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		CourseName: s.courseName,
		Summary:    s.summary,
		Messages:   append([]ai.Message(nil), s.messages...),
	}
}

// Service owns the external collaborators and the live sessions.
type Service struct {
	store       course.Store
	provider    ai.Provider
	extractor   extract.Extractor
	historyPath string

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewService(store course.Store, provider ai.Provider, extractor extract.Extractor, historyPath string) *Service {
	return &Service{
		store:       store,
		provider:    provider,
		extractor:   extractor,
		historyPath: historyPath,
		sessions:    make(map[string]*Session),
	}
}

// Session returns the session for id, creating it on first use. A new
// session starts with an empty transcript and summary; its chat handle is
// seeded from the fallback transcript file when one exists.
func (s *Service) Session(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess
	}

	seed, err := ReadTranscript(s.historyPath)
	if err != nil {
		log.Printf("session: fallback transcript unreadable: %v", err)
		seed = nil
	}

	sess := &Session{
		courseName: DefaultCourseName,
		chat:       ai.NewChat(s.provider, seed),
	}
	s.sessions[id] = sess
	return sess
}

// Drop discards a session's in-memory state.
func (s *Service) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// SendPrompt asks the completion client for a reply and records the user and
// assistant turns. A provider failure propagates to the caller unchanged and
// leaves the transcript untouched, keeping it in step with the chat handle's
// history, which also rolls back on failure.
func (s *Service) SendPrompt(ctx context.Context, sess *Session, text string) (string, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	reply, err := sess.chat.Send(ctx, text)
	if err != nil {
		return "", err
	}

	sess.messages = append(sess.messages,
		ai.Message{Role: ai.RoleUser, Content: text},
		ai.Message{Role: ai.RoleAssistant, Content: reply},
	)
	return reply, nil
}

// SummarizeDocuments extracts every file in order, joins the texts with
// newlines, appends the fixed instruction prompt, and sends the whole thing
// as a single turn. Only the summary changes; the chat transcript does not.
// A corrupt file is skipped and reported in warnings rather than failing the
// batch.
func (s *Service) SummarizeDocuments(ctx context.Context, sess *Session, files []extract.File) (summary string, warnings []string, err error) {
	texts, warnings := extract.All(ctx, s.extractor, files)
	if len(texts) == 0 {
		return "", warnings, ErrNoDocuments
	}

	prompt := strings.Join(texts, "\n") + "\n" + FixedPrompt

	sess.mu.Lock()
	defer sess.mu.Unlock()

	reply, err := sess.chat.Send(ctx, prompt)
	if err != nil {
		return "", warnings, err
	}
	sess.summary = reply

	if err := WriteTranscript(s.historyPath, sess.messages); err != nil {
		log.Printf("session: save fallback transcript: %v", err)
	}
	return reply, warnings, nil
}

// LoadCourse replaces the session's transcript and summary from storage and
// rehydrates the chat handle with the loaded history. An unknown name leaves
// the session untouched and returns course.ErrNotFound.
func (s *Service) LoadCourse(ctx context.Context, sess *Session, name string) error {
	rec, err := s.store.Load(ctx, name)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.courseName = rec.CourseName
	sess.messages = append([]ai.Message(nil), rec.Messages...)
	sess.summary = rec.Summary
	sess.chat.Replace(rec.Messages)
	return nil
}

// SaveCourse writes the current transcript and summary under name, upserting
// by course name, and makes name the active course. Saving an empty session
// is refused with ErrNothingToSave.
func (s *Service) SaveCourse(ctx context.Context, sess *Session, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return course.ErrEmptyName
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.summary == "" && len(sess.messages) == 0 {
		return ErrNothingToSave
	}

	rec := course.Record{
		CourseName: name,
		Summary:    sess.summary,
		Messages:   append([]ai.Message(nil), sess.messages...),
		Date:       time.Now().Format(course.DateLayout),
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("session: save course %q: %w", name, err)
	}

	sess.courseName = name
	return nil
}

// DeleteCourse removes the stored record. The session's transcript and
// summary are cleared only when the deleted course is the active one.
func (s *Service) DeleteCourse(ctx context.Context, sess *Session, name string) error {
	if err := s.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("session: delete course %q: %w", name, err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.courseName == name {
		sess.messages = nil
		sess.summary = ""
		sess.chat.Replace(nil)
	}
	return nil
}

// Clear empties the transcript and summary and resets the chat handle's
// history to match; the active course name is kept.
func (s *Service) Clear(sess *Session) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.messages = nil
	sess.summary = ""
	sess.chat.Replace(nil)
}

// ListCourses returns the distinct stored course names.
func (s *Service) ListCourses(ctx context.Context) ([]string, error) {
	return s.store.ListNames(ctx)
}
