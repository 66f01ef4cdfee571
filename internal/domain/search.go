package domain

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

const (
	DefaultRadiusMiles = 30.0
	MinRadiusMiles     = 1.0
	MaxRadiusMiles     = 500.0
	DefaultLimit       = 100
	MaxLimit           = 500
	DefaultWindowDays  = 30
)

type SearchRequest struct {
	Keyword          string           `json:"keyword,omitempty"`
	LocationName     string           `json:"location,omitempty"`
	Latitude         *float64         `json:"latitude,omitempty"`
	Longitude        *float64         `json:"longitude,omitempty"`
	RadiusMiles      float64          `json:"radius"`
	From             time.Time        `json:"startDate"`
	To               time.Time        `json:"endDate"`
	Categories       []string         `json:"categories,omitempty"`
	PartySubcategory PartySubcategory `json:"partySubcategory,omitempty"`
	Page             int              `json:"page"`
	Limit            int              `json:"limit"`
	ExcludeIDs       []string         `json:"excludeIds,omitempty"`
}

// Origin returns the search centre, or nil when no coordinates were given.
func (r SearchRequest) Origin() *Coordinates {
	if r.Latitude == nil || r.Longitude == nil {
		return nil
	}
	return NewCoordinates(*r.Longitude, *r.Latitude)
}

func (r SearchRequest) IsPartySearch() bool {
	return slices.ContainsFunc(r.Categories, func(c string) bool {
		return strings.EqualFold(c, CategoryParty)
	})
}

// Normalize applies defaults and clamps. It returns ErrValidation for inputs
// that cannot be searched at all.
func (r SearchRequest) Normalize(now time.Time) (SearchRequest, error) {
	out := r
	out.Keyword = strings.TrimSpace(r.Keyword)
	out.LocationName = strings.TrimSpace(r.LocationName)

	if (r.Latitude == nil) != (r.Longitude == nil) {
		return out, fmt.Errorf("%w: latitude and longitude must be given together", ErrValidation)
	}
	if r.Latitude != nil && r.Origin() == nil {
		return out, fmt.Errorf("%w: coordinates out of range (%v, %v)", ErrValidation, *r.Latitude, *r.Longitude)
	}

	if math.IsNaN(r.RadiusMiles) || math.IsInf(r.RadiusMiles, 0) {
		return out, fmt.Errorf("%w: radius must be a finite number", ErrValidation)
	}
	switch {
	case r.RadiusMiles == 0:
		out.RadiusMiles = DefaultRadiusMiles
	case r.RadiusMiles < MinRadiusMiles:
		out.RadiusMiles = MinRadiusMiles
	case r.RadiusMiles > MaxRadiusMiles:
		out.RadiusMiles = MaxRadiusMiles
	}

	today := StartOfDay(now)
	if out.From.IsZero() {
		out.From = today
	}
	if out.To.IsZero() {
		out.To = StartOfDay(out.From).AddDate(0, 0, DefaultWindowDays+1).Add(-time.Nanosecond)
	}
	if out.To.Before(out.From) {
		return out, fmt.Errorf("%w: end date before start date", ErrValidation)
	}

	if out.Page < 1 {
		out.Page = 1
	}
	if out.Limit < 1 {
		out.Limit = DefaultLimit
	}
	if out.Limit > MaxLimit {
		out.Limit = MaxLimit
	}

	cats := make([]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" && !slices.Contains(cats, c) {
			cats = append(cats, c)
		}
	}
	out.Categories = cats
	out.ExcludeIDs = slices.Clone(r.ExcludeIDs)

	return out, nil
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

type SourceStat struct {
	Count int     `json:"count"`
	Error *string `json:"error"`
}

type SearchMeta struct {
	Timestamp       time.Time `json:"timestamp"`
	TotalEvents     int       `json:"totalEvents"`
	Page            int       `json:"page"`
	Limit           int       `json:"limit"`
	HasMore         bool      `json:"hasMore"`
	ExecutionTimeMs int64     `json:"executionTimeMs"`
	QueryUsed       string    `json:"queryUsed"`
	Cached          bool      `json:"cached"`
	Fallback        bool      `json:"fallback"`
}

type SearchResponse struct {
	Events      []Event               `json:"events"`
	SourceStats map[string]SourceStat `json:"sourceStats"`
	Meta        SearchMeta            `json:"meta"`
}

// Outage describes a search where both the primary provider and the
// fallback failed.
type Outage struct {
	Provider    string
	Fallback    string
	Query       string
	PrimaryErr  string
	FallbackErr string
	At          time.Time
}
