package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Artist is either a bare name (legacy documents store a JSON string) or a
// profiled entry with role, bio and pictures. The form is decided once when
// the document is decoded and kept when it is encoded again.
type Artist struct {
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Bio   string `json:"bio,omitempty"`
	Photo string `json:"photo,omitempty"`
	Thumb string `json:"thumb,omitempty"`

	Profiled bool `json:"-"`
}

// NameOnly builds a bare-name artist
func NameOnly(name string) Artist {
	return Artist{Name: name}
}

// HasBio reports whether the artist belongs in the lineup slider
func (a Artist) HasBio() bool {
	return strings.TrimSpace(a.Bio) != ""
}

type artistProfile struct {
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
	Bio   string `json:"bio,omitempty"`
	Photo string `json:"photo,omitempty"`
	Thumb string `json:"thumb,omitempty"`
}

func (a Artist) MarshalJSON() ([]byte, error) {
	if !a.Profiled {
		return json.Marshal(a.Name)
	}
	return json.Marshal(artistProfile{
		Name:  a.Name,
		Role:  a.Role,
		Bio:   a.Bio,
		Photo: a.Photo,
		Thumb: a.Thumb,
	})
}

func (a *Artist) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty artist entry")
	}

	switch data[0] {
	case 'n':
		// null entries decode to the zero artist and are dropped by ParseEventStore
		if string(data) != "null" {
			return fmt.Errorf("artist must be a string or an object, got %s", data)
		}
		*a = Artist{}
		return nil
	case '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*a = NameOnly(name)
		return nil
	case '{':
		var p artistProfile
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*a = Artist{
			Name:     p.Name,
			Role:     p.Role,
			Bio:      p.Bio,
			Photo:    p.Photo,
			Thumb:    p.Thumb,
			Profiled: true,
		}
		return nil
	default:
		return fmt.Errorf("artist must be a string or an object, got %s", data)
	}
}

func compactArtists(artists []Artist) []Artist {
	if artists == nil {
		return nil
	}
	out := artists[:0]
	for _, a := range artists {
		if a != (Artist{}) {
			out = append(out, a)
		}
	}
	return out
}

// ArtistNames returns the display names in order
func ArtistNames(artists []Artist) []string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	return names
}
