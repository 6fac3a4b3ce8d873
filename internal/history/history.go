// Package history keeps an optional audit log of computed translations in
// Postgres. Recording is best-effort: storage failures are logged and never
// reach the request path.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/themultilangtranslator-png/multilang-translator/internal/translation"
)

// TranslationRecord is one persisted translation outcome. Cache hits are not
// recorded; only provider-computed results land here.
type TranslationRecord struct {
	ID               uint      `gorm:"primaryKey"`
	Author           string    `gorm:"size:256"`
	OriginalText     string    `gorm:"type:text"`
	DetectedLanguage string    `gorm:"size:16"`
	Languages        string    `gorm:"size:256"`
	RenderedText     string    `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"index"`
}

// Store records translation results in Postgres.
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// Open connects to the history database and migrates the record table.
func Open(databaseURL string, logger zerolog.Logger) (*Store, error) {
	trimmed := strings.TrimSpace(databaseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("history database URL is empty")
	}

	db, err := gorm.Open(postgres.Open(trimmed), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.AutoMigrate(&TranslationRecord{}); err != nil {
		return nil, fmt.Errorf("migrate history schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Record implements translation.Recorder.
func (s *Store) Record(ctx context.Context, result *translation.Result) {
	if s == nil || s.db == nil || result == nil {
		return
	}

	record := TranslationRecord{
		Author:           result.Author,
		OriginalText:     result.OriginalText,
		DetectedLanguage: result.DetectedLanguage,
		Languages:        strings.Join(result.Languages, ","),
		RenderedText:     result.RenderedText,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		s.logger.Warn().Err(err).Msg("record translation history failed")
	}
}

var _ translation.Recorder = (*Store)(nil)
