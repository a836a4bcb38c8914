package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	data []byte
	err  error
}

func (s stubSource) Load(context.Context) ([]byte, error) { return s.data, s.err }
func (s stubSource) Name() string                         { return "stub" }

func TestSiteService_Home(t *testing.T) {
	svc := NewSiteService(stubSource{data: []byte(validDocument)})

	page := svc.Home(context.Background())
	require.NotNil(t, page.Event)
	assert.Equal(t, "Vol. 1", page.Event.Title)
	assert.Equal(t, "12 July in Nuanu", page.Event.Badge)

	page, ok := svc.Event(context.Background(), 1)
	require.True(t, ok)
	assert.Equal(t, "Vol. 1", page.Event.Title)
}

func TestSiteService_LoadFailuresRenderStaticPage(t *testing.T) {
	for _, src := range []stubSource{
		{err: errors.New("unreachable")},
		{data: []byte(`{"events":`)},
	} {
		svc := NewSiteService(src)
		page := svc.Home(context.Background())
		assert.Nil(t, page.Event)
		assert.Empty(t, page.Past)

		_, ok := svc.Event(context.Background(), 1)
		assert.False(t, ok)
	}
}

func TestSiteService_Document(t *testing.T) {
	data, err := NewSiteService(stubSource{data: []byte(validDocument)}).Document(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, validDocument, string(data))

	_, err = NewSiteService(stubSource{err: errors.New("boom")}).Document(context.Background())
	assert.Error(t, err)
}
