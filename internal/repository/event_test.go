package repository

import (
	"encoding/json"
	"testing"

	"github.com/stpnv0/EventRadar/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBatch(t *testing.T) {
	events := []domain.Event{
		{ID: "p_1", Title: "first", Provider: "p", RawDate: "2026-11-07T03:00:00Z"},
		{ID: "p_2", Title: "undated", Provider: "p", RawDate: "whenever"},
		{ID: "p_1", Title: "first again", Provider: "p", RawDate: "2026-11-08T03:00:00Z"},
	}

	b, err := newBatch(events)

	require.NoError(t, err)
	assert.Equal(t, []string{"p_1", "p_2"}, b.ids)
	assert.Equal(t, []string{"p", "p"}, b.providers)
	assert.Equal(t, []string{"2026-11-08T03:00:00Z", ""}, b.rawDates)

	var decoded domain.Event
	require.NoError(t, json.Unmarshal([]byte(b.payloads[0]), &decoded))
	assert.Equal(t, "first again", decoded.Title)
}

func TestNewBatch_PayloadRoundTrip(t *testing.T) {
	e := domain.Event{
		ID:               "p_1",
		Title:            "Rooftop Sunset",
		Coordinates:      &domain.Coordinates{Lon: -74, Lat: 40.7},
		Category:         domain.CategoryParty,
		IsPartyEvent:     true,
		PartySubcategory: domain.SubcategoryRooftop,
	}

	b, err := newBatch([]domain.Event{e})
	require.NoError(t, err)

	var decoded domain.Event
	require.NoError(t, json.Unmarshal([]byte(b.payloads[0]), &decoded))
	assert.Equal(t, e, decoded)
}
