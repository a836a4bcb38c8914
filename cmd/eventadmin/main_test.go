package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basstatic/internal/editor"
)

func TestParseForm_OverridesOnlyGivenFields(t *testing.T) {
	form := editor.Form{Title: "Old", Venue: "Nuanu", Guestlist: "false"}

	require.NoError(t, parseForm("edit", &form, []string{"-title", "New", "-guestlist", "on", "-artists", "A, B"}))
	assert.Equal(t, "New", form.Title)
	assert.Equal(t, "Nuanu", form.Venue)
	assert.Equal(t, "on", form.Guestlist)
	assert.Equal(t, "A, B", form.Artists)

	assert.Error(t, parseForm("edit", &form, []string{"stray"}))
	assert.Error(t, parseForm("edit", &form, []string{"-poster", "x.png"}))
}

func TestEventID(t *testing.T) {
	id, err := eventID([]string{"12"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, args := range [][]string{nil, {"abc"}, {"0"}, {"-3"}} {
		_, err := eventID(args)
		assert.Error(t, err, args)
	}
}
