package model

import (
	"encoding/json"

	"github.com/mtran/wellness-backend/internal/apperr"
)

// JournalEntry is one journal record. On the wire it is the ordered
// 4-tuple [entry_type, content, sentiment, topics].
type JournalEntry struct {
	Type      string
	Content   string
	Sentiment string
	Topics    []string
}

// MarshalJSON encodes the entry as its 4-element array form.
func (e JournalEntry) MarshalJSON() ([]byte, error) {
	topics := e.Topics
	if topics == nil {
		topics = []string{}
	}
	return json.Marshal([]any{e.Type, e.Content, e.Sentiment, topics})
}

// UnmarshalJSON decodes the 4-element array form. Sentiment may be null.
func (e *JournalEntry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 4 {
		return apperr.Validationf("journal entry must have 4 elements, got %d", len(raw))
	}

	if err := json.Unmarshal(raw[0], &e.Type); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &e.Content); err != nil {
		return err
	}
	if string(raw[2]) != "null" {
		if err := json.Unmarshal(raw[2], &e.Sentiment); err != nil {
			return err
		}
	}
	if string(raw[3]) != "null" {
		if err := json.Unmarshal(raw[3], &e.Topics); err != nil {
			return err
		}
	}
	if e.Topics == nil {
		e.Topics = []string{}
	}
	return nil
}

// JournalEntryUpdate carries a partial update of a journal entry.
// Nil fields keep the existing values.
type JournalEntryUpdate struct {
	Type      *string
	Content   *string
	Sentiment *string
	Topics    []string
}

// Apply merges the update into a copy of the entry.
func (u JournalEntryUpdate) Apply(e JournalEntry) JournalEntry {
	if u.Type != nil {
		e.Type = *u.Type
	}
	if u.Content != nil {
		e.Content = *u.Content
	}
	if u.Sentiment != nil {
		e.Sentiment = *u.Sentiment
	}
	if u.Topics != nil {
		e.Topics = u.Topics
	}
	return e
}
