package model

import (
	"fmt"
	"time"
)

// SummaryType selects how far the text is boiled down.
type SummaryType string

const (
	SummaryTypeWord     SummaryType = "word"
	SummaryTypeSentence SummaryType = "sentence"
)

// ParseSummaryType accepts only "word" and "sentence".
func ParseSummaryType(s string) (SummaryType, error) {
	switch SummaryType(s) {
	case SummaryTypeWord, SummaryTypeSentence:
		return SummaryType(s), nil
	default:
		return "", fmt.Errorf("unknown summary type %q", s)
	}
}

func (t SummaryType) Valid() bool {
	return t == SummaryTypeWord || t == SummaryTypeSentence
}

// SummaryEntry is one history record. Entries are never modified after creation.
type SummaryEntry struct {
	ID           string      `json:"id"`
	OriginalText string      `json:"originalText"`
	SummaryText  string      `json:"summaryText"`
	SummaryType  SummaryType `json:"summaryType"`
	Timestamp    int64       `json:"timestamp"` // Unix milliseconds
}

// CreatedAt returns Timestamp as a time.Time.
func (e SummaryEntry) CreatedAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}
