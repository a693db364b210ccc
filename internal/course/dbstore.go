package course

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jmliang/coursenotes/internal/ai"
)

// courseRow is the relational shape of a Record. The transcript is stored as
// a JSON-encoded string inside the row; encodeMessages/decodeMessages are the
// only places that boundary is crossed.
type courseRow struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	CourseName string `gorm:"type:varchar(191);uniqueIndex;not null"`
	Summary    string `gorm:"type:text"`
	Messages   string `gorm:"type:text"`
	Date       string `gorm:"type:varchar(10)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (courseRow) TableName() string { return "courses" }

// DBStore persists course records in a relational table, upserting on the
// course_name unique key.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) (*DBStore, error) {
	if err := db.AutoMigrate(&courseRow{}); err != nil {
		return nil, fmt.Errorf("course: migrate courses table: %w", err)
	}
	return &DBStore{db: db}, nil
}

func (s *DBStore) Save(ctx context.Context, rec Record) error {
	if strings.TrimSpace(rec.CourseName) == "" {
		return ErrEmptyName
	}

	encoded, err := encodeMessages(rec.Messages)
	if err != nil {
		return err
	}

	row := courseRow{
		CourseName: rec.CourseName,
		Summary:    rec.Summary,
		Messages:   encoded,
		Date:       rec.Date,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "course_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"summary", "messages", "date", "updated_at"}),
		}).
		Create(&row).Error
}

// Load returns the record for name. Should the table ever hold historical
// rows for a name, the most recent one wins.
func (s *DBStore) Load(ctx context.Context, name string) (*Record, error) {
	var row courseRow
	err := s.db.WithContext(ctx).
		Where("course_name = ?", name).
		Order("date DESC, id DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	msgs, err := decodeMessages(row.Messages)
	if err != nil {
		return nil, err
	}
	return &Record{
		CourseName: row.CourseName,
		Summary:    row.Summary,
		Messages:   msgs,
		Date:       row.Date,
	}, nil
}

func (s *DBStore) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.WithContext(ctx).
		Model(&courseRow{}).
		Distinct().
		Order("course_name ASC").
		Pluck("course_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *DBStore) Delete(ctx context.Context, name string) error {
	return s.db.WithContext(ctx).
		Where("course_name = ?", name).
		Delete(&courseRow{}).Error
}

func encodeMessages(msgs []ai.Message) (string, error) {
	if msgs == nil {
		msgs = []ai.Message{}
	}
	b, err := json.Marshal(msgs)
	if err != nil {
		return "", fmt.Errorf("course: encode messages: %w", err)
	}
	return string(b), nil
}

func decodeMessages(s string) ([]ai.Message, error) {
	if s == "" {
		return nil, nil
	}
	var msgs []ai.Message
	if err := json.Unmarshal([]byte(s), &msgs); err != nil {
		return nil, fmt.Errorf("course: decode messages: %w", err)
	}
	return msgs, nil
}

var _ Store = (*DBStore)(nil)
