package provider

import (
	"fmt"
	"strings"
	"time"

	"github.com/stpnv0/EventRadar/internal/domain"
)

// Date buckets understood by the search endpoint.
const (
	DateToday = "today"
	DateWeek  = "week"
	DateMonth = "month"
	DateAny   = "any"
)

// The provider has no party taxonomy, so party searches carry these terms.
var partyVocabulary = []string{"nightclub", "dj", "dance", "festival", "celebration"}

var subcategoryTerms = map[domain.PartySubcategory]string{
	domain.SubcategoryNightclub:   "nightclub dj",
	domain.SubcategoryFestival:    "music festival",
	domain.SubcategoryBrunch:      "brunch party",
	domain.SubcategoryDayParty:    "pool rooftop daytime",
	domain.SubcategoryRooftop:     "rooftop bar",
	domain.SubcategoryNetworking:  "networking mixer",
	domain.SubcategoryCelebration: "celebration gala",
	domain.SubcategorySocial:      "social meetup",
	domain.SubcategoryPopup:       "pop-up",
	domain.SubcategoryImmersive:   "immersive experience",
}

// BuildQuery renders the free-text query for req. Coordinates, when present,
// take precedence over the location name.
func BuildQuery(req domain.SearchRequest) string {
	party := req.IsPartySearch()

	parts := make([]string, 0, 4)
	switch {
	case req.Keyword != "":
		parts = append(parts, req.Keyword)
	case party:
		parts = append(parts, "party events")
	default:
		parts = append(parts, "events")
	}

	if party {
		parts = append(parts, strings.Join(partyVocabulary, " "))
		if terms, ok := subcategoryTerms[req.PartySubcategory]; ok {
			parts = append(parts, terms)
		}
	}

	if origin := req.Origin(); origin != nil {
		parts = append(parts, fmt.Sprintf("near %.6f,%.6f", origin.Lat, origin.Lon))
	} else if req.LocationName != "" {
		parts = append(parts, "in "+req.LocationName)
	}

	return strings.Join(parts, " ")
}

// DateBucket maps the requested window to the coarsest bucket that still
// covers its end.
func DateBucket(req domain.SearchRequest, now time.Time) string {
	if req.To.IsZero() {
		return DateAny
	}
	today := domain.StartOfDay(now)
	switch span := req.To.Sub(today); {
	case span < 24*time.Hour:
		return DateToday
	case span < 7*24*time.Hour:
		return DateWeek
	case span < (domain.DefaultWindowDays+1)*24*time.Hour:
		return DateMonth
	default:
		return DateAny
	}
}

// FetchSize is the provider row count for req: enough to fill the requested
// page after filtering drops a share of the rows.
func FetchSize(req domain.SearchRequest, overFetch, maxFetch int) int {
	limit := max(req.Limit, 1)
	page := max(req.Page, 1)
	if overFetch < 1 {
		overFetch = 1
	}
	n := max(limit*page*overFetch, limit+20)
	if maxFetch > 0 {
		n = min(n, maxFetch)
	}
	return n
}
