package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyDocument = `{
  "events": [
    {
      "id": 1,
      "type": "full",
      "status": "past",
      "title": "Bass Static Vol. 1",
      "date": "2024-01-01",
      "venue": "Nuanu",
      "location": "Bali",
      "artists": ["DJ Lowend", {"name": "Mara", "role": "headliner", "bio": "Sub-bass purist", "photo": "media/events/1/mara.jpg", "thumb": "media/events/1/mara-thumb.jpg"}],
      "mc": [],
      "genres": ["dubstep", "dnb"],
      "ticketLink": null,
      "guestlistEnabled": true,
      "heroVideo": "media/events/1/hero.mp4",
      "posterImage": "media/events/1/poster.jpeg",
      "bgMusic": null,
      "streamRecording": null
    }
  ],
  "settings": {"activeEventId": 1}
}`

func TestParseEventStore_ResolvesArtistForms(t *testing.T) {
	store, err := ParseEventStore([]byte(legacyDocument))
	require.NoError(t, err)
	require.Len(t, store.Events, 1)

	artists := store.Events[0].Artists
	require.Len(t, artists, 2)
	assert.False(t, artists[0].Profiled)
	assert.Equal(t, "DJ Lowend", artists[0].Name)
	assert.False(t, artists[0].HasBio())

	assert.True(t, artists[1].Profiled)
	assert.Equal(t, "headliner", artists[1].Role)
	assert.True(t, artists[1].HasBio())
	assert.Equal(t, "media/events/1/mara-thumb.jpg", artists[1].Thumb)
}

func TestArtistMarshalKeepsForm(t *testing.T) {
	data, err := json.Marshal([]Artist{NameOnly("DJ Lowend"), {Name: "Mara", Bio: "x", Profiled: true}})
	require.NoError(t, err)
	assert.JSONEq(t, `["DJ Lowend", {"name": "Mara", "bio": "x"}]`, string(data))
}

func TestParseEventStore_SkipsNullArtists(t *testing.T) {
	store, err := ParseEventStore([]byte(`{"events":[{"id":1,"type":"full","status":"past","title":"A","artists":["DJ Lowend",null,{"name":"Mara"}],"mc":[null]}],"settings":{"activeEventId":null}}`))
	require.NoError(t, err)

	ev := store.Events[0]
	assert.Equal(t, []string{"DJ Lowend", "Mara"}, ArtistNames(ev.Artists))
	assert.Empty(t, ev.MC)
}

func TestArtistUnmarshalRejectsNumbers(t *testing.T) {
	var a Artist
	assert.Error(t, json.Unmarshal([]byte(`42`), &a))
}

func TestDate_LocalMidnight(t *testing.T) {
	d, err := ParseDate("2024-07-12")
	require.NoError(t, err)

	assert.Equal(t, 12, d.Day())
	assert.Equal(t, time.July, d.Month())
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, time.Local, d.Location())
	assert.Equal(t, "2024-07-12", d.String())

	_, err = ParseDate("12/07/2024")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-09"`), &d))
	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-09"`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
}

func TestEventStore_Lookups(t *testing.T) {
	store, err := ParseEventStore([]byte(legacyDocument))
	require.NoError(t, err)

	active, ok := store.Active()
	require.True(t, ok)
	assert.Equal(t, int64(1), active.ID)
	assert.Equal(t, int64(2), store.NextID())

	_, ok = store.Find(5)
	assert.False(t, ok)

	store.ClearActive()
	_, ok = store.Active()
	assert.False(t, ok)
	assert.Equal(t, int64(1), (&EventStore{}).NextID())
}

func TestMarshalDocument_Layout(t *testing.T) {
	store := &EventStore{Events: []Event{}}
	store.SetActiveID(3)

	data, err := store.MarshalDocument()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"events\": [],\n  \"settings\": {\n    \"activeEventId\": 3\n  }\n}\n", string(data))
}

func TestMediaPaths(t *testing.T) {
	assert.Equal(t, "media/events/7/hero.mp4", MediaPath(7, "hero.mp4"))
	assert.True(t, IsMediaPath("media/events/7/poster.png"))
	assert.False(t, IsMediaPath("media/other/x.png"))
	assert.False(t, IsMediaPath("../../etc/passwd"))
}

func TestSaveRequest_AcceptsLegacyFieldNames(t *testing.T) {
	var req SaveRequest
	require.NoError(t, json.Unmarshal([]byte(`{"password":"s3cret","data":{"events":[]}}`), &req))
	assert.Equal(t, "s3cret", req.Secret())
	assert.JSONEq(t, `{"events":[]}`, string(req.Payload()))

	req = SaveRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"credential":"x","document":null}`), &req))
	assert.Nil(t, req.Payload())
}

func TestParseFlexibleBool(t *testing.T) {
	for in, want := range map[string]bool{"true": true, "on": true, "1": true, "false": false, "": false} {
		got, err := ParseFlexibleBool(in)
		require.NoError(t, err)
		assert.Equal(t, want, got.Bool(), in)
	}
	_, err := ParseFlexibleBool("maybe")
	assert.Error(t, err)
}
