package course

import (
	"context"
	"errors"
	"strings"

	"github.com/jmliang/coursenotes/internal/ai"
)

var (
	ErrNotFound  = errors.New("course: not found")
	ErrEmptyName = errors.New("course: empty course name")
)

// DateLayout is the calendar-date format stored in a record's Date field.
const DateLayout = "2006-01-02"

// Record is a named bundle of one summary plus its chat transcript. It is
// uniquely identified by CourseName; saving an existing name overwrites.
type Record struct {
	CourseName string       `json:"course_name"`
	Summary    string       `json:"summary"`
	Messages   []ai.Message `json:"messages"`
	Date       string       `json:"date"`
}

// Store persists course records. Implementations must be interchangeable:
// Save upserts by CourseName, Load returns ErrNotFound for unknown names,
// ListNames never returns duplicates, and Delete is a no-op when nothing
// matched.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Load(ctx context.Context, name string) (*Record, error)
	ListNames(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// SanitizeName reduces a course name to a filesystem-safe token: only
// letters, digits, spaces and underscores survive, and spaces become
// underscores.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}
