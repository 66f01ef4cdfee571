package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/stpnv0/EventRadar/internal/domain"
)

// SearchEventsRequest is the wire form of a search. Dates accept RFC3339 or
// YYYY-MM-DD; a bare end date covers the whole day.
type SearchEventsRequest struct {
	Keyword          string   `json:"keyword"`
	Location         string   `json:"location"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	Radius           float64  `json:"radius"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Categories       []string `json:"categories"`
	PartySubcategory string   `json:"partySubcategory"`
	Page             int      `json:"page" binding:"gte=0"`
	Limit            int      `json:"limit" binding:"gte=0"`
	ExcludeIDs       []string `json:"excludeIds"`
}

func (r SearchEventsRequest) ToDomain() (domain.SearchRequest, error) {
	from, err := parseDate(r.StartDate, false)
	if err != nil {
		return domain.SearchRequest{}, fmt.Errorf("invalid startDate: %w", err)
	}
	to, err := parseDate(r.EndDate, true)
	if err != nil {
		return domain.SearchRequest{}, fmt.Errorf("invalid endDate: %w", err)
	}

	sub, err := domain.ParsePartySubcategory(r.PartySubcategory)
	if err != nil {
		return domain.SearchRequest{}, err
	}

	return domain.SearchRequest{
		Keyword:          r.Keyword,
		LocationName:     r.Location,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		RadiusMiles:      r.Radius,
		From:             from,
		To:               to,
		Categories:       r.Categories,
		PartySubcategory: sub,
		Page:             r.Page,
		Limit:            r.Limit,
		ExcludeIDs:       r.ExcludeIDs,
	}, nil
}

func parseDate(s string, endOfDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC3339 or YYYY-MM-DD, got %q", s)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}
