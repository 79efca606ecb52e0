package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrJournalEmpty       = errors.New("journal entry needs gratitude or reflection text")
	ErrJournalTooLong     = errors.New("journal text is too long (max 5000 chars)")
	ErrEmotionRequired    = errors.New("emotion label is required")
	ErrEmotionTooLong     = errors.New("emotion label is too long (max 40 chars)")
	ErrInvalidEntryTime   = errors.New("entry timestamp is required")
	ErrEmotionGlyphTooBig = errors.New("emotion glyph is too long (max 16 chars)")
)

const (
	MaxJournalTextLen = 5000
	MaxEmotionLen     = 40
	MaxGlyphLen       = 16
)

type JournalEntry struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Gratitude    string    `json:"gratitude"`
	Reflection   string    `json:"reflection"`
	Emotion      string    `json:"emotion"`
	EmotionGlyph string    `json:"emotion_glyph,omitempty"`
}

func NewJournalEntry(gratitude, reflection, emotion, glyph string, at time.Time) (*JournalEntry, error) {
	entry := &JournalEntry{
		ID:           uuid.NewString(),
		Timestamp:    at.UTC(),
		Gratitude:    strings.TrimSpace(gratitude),
		Reflection:   strings.TrimSpace(reflection),
		Emotion:      NormalizeEmotion(emotion),
		EmotionGlyph: strings.TrimSpace(glyph),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

func (e *JournalEntry) Validate() error {
	if e.Timestamp.IsZero() {
		return ErrInvalidEntryTime
	}
	if e.Gratitude == "" && e.Reflection == "" {
		return ErrJournalEmpty
	}
	if utf8.RuneCountInString(e.Gratitude) > MaxJournalTextLen || utf8.RuneCountInString(e.Reflection) > MaxJournalTextLen {
		return ErrJournalTooLong
	}
	if e.Emotion == "" {
		return ErrEmotionRequired
	}
	if utf8.RuneCountInString(e.Emotion) > MaxEmotionLen {
		return ErrEmotionTooLong
	}
	if utf8.RuneCountInString(e.EmotionGlyph) > MaxGlyphLen {
		return ErrEmotionGlyphTooBig
	}
	return nil
}

// NormalizeEmotion lower-cases and trims a label so analytics can match it.
func NormalizeEmotion(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
