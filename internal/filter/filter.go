// Package filter holds the geographic, date and exclusion predicates applied
// to normalized events, plus ordering and pagination.
package filter

import (
	"slices"
	"strings"
	"time"

	"github.com/stpnv0/EventRadar/internal/domain"
	"github.com/stpnv0/EventRadar/internal/geo"
)

// PartyRadiusBoost widens the radius for party events in party searches;
// party venues are sparser per unit area.
const PartyRadiusBoost = 1.5

// Apply returns the events that satisfy the category, radius and date
// predicates of req. The input slice is not modified.
func Apply(events []domain.Event, req domain.SearchRequest, now time.Time) []domain.Event {
	origin := req.Origin()
	partySearch := req.IsPartySearch()
	today := domain.StartOfDay(now)

	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if !matchesCategory(e, req.Categories) {
			continue
		}
		if origin != nil && !WithinRadius(e, *origin, req.RadiusMiles, partySearch) {
			continue
		}
		if !matchesDate(e, req, today) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// WithinRadius reports whether e lies within the effective radius of origin.
// Events without coordinates cannot be tested and pass.
func WithinRadius(e domain.Event, origin domain.Coordinates, radius float64, partySearch bool) bool {
	if e.Coordinates == nil {
		return true
	}
	return geo.Distance(origin, *e.Coordinates) <= EffectiveRadius(e, radius, partySearch)
}

func EffectiveRadius(e domain.Event, radius float64, partySearch bool) float64 {
	if partySearch && e.IsPartyEvent {
		return radius * PartyRadiusBoost
	}
	return radius
}

// matchesDate keeps undated events; they are sorted last instead.
func matchesDate(e domain.Event, req domain.SearchRequest, today time.Time) bool {
	start, ok := e.StartTime()
	if !ok {
		return true
	}
	if start.Before(today) {
		return false
	}
	if !req.From.IsZero() && start.Before(req.From) {
		return false
	}
	if !req.To.IsZero() && start.After(req.To) {
		return false
	}
	return true
}

func matchesCategory(e domain.Event, categories []string) bool {
	if len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		if strings.EqualFold(c, domain.CategoryParty) {
			if e.IsPartyEvent {
				return true
			}
			continue
		}
		if strings.EqualFold(c, e.Category) {
			return true
		}
	}
	return false
}

// Exclude drops events whose id is listed, as used by "load more" paging.
func Exclude(events []domain.Event, ids []string) []domain.Event {
	if len(ids) == 0 {
		return events
	}
	skip := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		skip[id] = struct{}{}
	}
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if _, ok := skip[e.ID]; ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

// SortByDate sorts in place, ascending by RawDate. Undated events go last and
// keep their relative order.
func SortByDate(events []domain.Event) {
	slices.SortStableFunc(events, func(a, b domain.Event) int {
		ta, okA := a.StartTime()
		tb, okB := b.StartTime()
		switch {
		case okA && okB:
			return ta.Compare(tb)
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
}

type Page struct {
	Events  []domain.Event
	Total   int
	HasMore bool
}

// Paginate slices one page out of events; Total is the size before slicing.
func Paginate(events []domain.Event, page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = domain.DefaultLimit
	}
	total := len(events)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	return Page{
		Events:  slices.Clone(events[start:end]),
		Total:   total,
		HasMore: total > page*limit,
	}
}
