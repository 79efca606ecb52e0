package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrTriggerSituationEmpty = errors.New("trigger situation cannot be empty")
	ErrTriggerTextTooLong    = errors.New("trigger text is too long (max 2000 chars)")
	ErrInvalidIntensity      = errors.New("intensity must be between 1 and 10")
)

const (
	MinIntensity      = 1
	MaxIntensity      = 10
	MaxTriggerTextLen = 2000
)

// TriggerEntry records a situation that provoked a reaction.
type TriggerEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Situation string    `json:"situation"`
	Reaction  string    `json:"reaction"`
	Emotion   string    `json:"emotion"`
	Intensity int       `json:"intensity"`
}

func NewTriggerEntry(situation, reaction, emotion string, intensity int, at time.Time) (*TriggerEntry, error) {
	entry := &TriggerEntry{
		ID:        uuid.NewString(),
		Timestamp: at.UTC(),
		Situation: strings.TrimSpace(situation),
		Reaction:  strings.TrimSpace(reaction),
		Emotion:   NormalizeEmotion(emotion),
		Intensity: intensity,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

func (t *TriggerEntry) Validate() error {
	if t.Timestamp.IsZero() {
		return ErrInvalidEntryTime
	}
	if t.Situation == "" {
		return ErrTriggerSituationEmpty
	}
	if utf8.RuneCountInString(t.Situation) > MaxTriggerTextLen || utf8.RuneCountInString(t.Reaction) > MaxTriggerTextLen {
		return ErrTriggerTextTooLong
	}
	if utf8.RuneCountInString(t.Emotion) > MaxEmotionLen {
		return ErrEmotionTooLong
	}
	if t.Intensity < MinIntensity || t.Intensity > MaxIntensity {
		return ErrInvalidIntensity
	}
	return nil
}
