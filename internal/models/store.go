package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MediaPrefix is the only repository directory uploads may write to
const MediaPrefix = "media/events/"

// MediaPath builds the conventional media path media/events/{id}/{name}
func MediaPath(eventID int64, name string) string {
	return MediaPrefix + strconv.FormatInt(eventID, 10) + "/" + name
}

// ParseEventStore decodes an events document
func ParseEventStore(data []byte) (*EventStore, error) {
	var store EventStore
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("failed to decode events document: %w", err)
	}
	for i := range store.Events {
		store.Events[i].Artists = compactArtists(store.Events[i].Artists)
		store.Events[i].MC = compactArtists(store.Events[i].MC)
	}
	return &store, nil
}

// MarshalDocument encodes the document the way it is stored: two-space
// indentation and a trailing newline.
func (s *EventStore) MarshalDocument() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode events document: %w", err)
	}
	return IndentDocument(data)
}

// IndentDocument re-indents raw JSON into the stored layout without touching
// its fields.
func IndentDocument(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent events document: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Find returns the event with the given id. The pointer aliases the slice element.
func (s *EventStore) Find(id int64) (*Event, bool) {
	for i := range s.Events {
		if s.Events[i].ID == id {
			return &s.Events[i], true
		}
	}
	return nil, false
}

// ActiveID returns settings.activeEventId when it is set
func (s *EventStore) ActiveID() (int64, bool) {
	if s.Settings.ActiveEventID == nil {
		return 0, false
	}
	return *s.Settings.ActiveEventID, true
}

// SetActiveID points settings.activeEventId at id
func (s *EventStore) SetActiveID(id int64) {
	s.Settings.ActiveEventID = &id
}

// ClearActive leaves the document without an active event
func (s *EventStore) ClearActive() {
	s.Settings.ActiveEventID = nil
}

// Active returns the event referenced by settings.activeEventId
func (s *EventStore) Active() (*Event, bool) {
	id, ok := s.ActiveID()
	if !ok {
		return nil, false
	}
	return s.Find(id)
}

// NextID returns max(existing ids, 0) + 1
func (s *EventStore) NextID() int64 {
	var max int64
	for _, ev := range s.Events {
		if ev.ID > max {
			max = ev.ID
		}
	}
	return max + 1
}

// IsMediaPath reports whether p lies under the media prefix. It is a plain
// prefix check, not a canonicalization.
func IsMediaPath(p string) bool {
	return strings.HasPrefix(p, MediaPrefix)
}
