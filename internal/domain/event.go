package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

const CategoryParty = "party"

type PartySubcategory string

const (
	SubcategoryNightclub   PartySubcategory = "nightclub"
	SubcategoryFestival    PartySubcategory = "festival"
	SubcategoryBrunch      PartySubcategory = "brunch"
	SubcategoryDayParty    PartySubcategory = "day-party"
	SubcategoryRooftop     PartySubcategory = "rooftop"
	SubcategoryNetworking  PartySubcategory = "networking"
	SubcategoryCelebration PartySubcategory = "celebration"
	SubcategorySocial      PartySubcategory = "social"
	SubcategoryPopup       PartySubcategory = "popup"
	SubcategoryImmersive   PartySubcategory = "immersive"
	SubcategoryGeneral     PartySubcategory = "general"
)

var PartySubcategories = []PartySubcategory{
	SubcategoryNightclub, SubcategoryFestival, SubcategoryBrunch,
	SubcategoryDayParty, SubcategoryRooftop, SubcategoryNetworking,
	SubcategoryCelebration, SubcategorySocial, SubcategoryPopup,
	SubcategoryImmersive, SubcategoryGeneral,
}

// ParsePartySubcategory accepts the empty string as "absent".
func ParsePartySubcategory(s string) (PartySubcategory, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	for _, sc := range PartySubcategories {
		if string(sc) == s {
			return sc, nil
		}
	}
	return "", fmt.Errorf("%w: unknown party subcategory %q", ErrValidation, s)
}

func (p PartySubcategory) Valid() bool {
	_, err := ParsePartySubcategory(string(p))
	return err == nil
}

// UnmarshalJSON maps unknown values to general so one foreign record cannot
// fail a whole decoded batch.
func (p *PartySubcategory) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParsePartySubcategory(s)
	if err != nil {
		v = SubcategoryGeneral
	}
	*p = v
	return nil
}

// Coordinates is serialized as a GeoJSON-style [lon, lat] pair.
type Coordinates struct {
	Lon float64
	Lat float64
}

// NewCoordinates returns nil unless both values are finite and in range.
func NewCoordinates(lon, lat float64) *Coordinates {
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) || math.IsInf(lat, 0) {
		return nil
	}
	if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return nil
	}
	return &Coordinates{Lon: lon, Lat: lat}
}

func (c Coordinates) Valid() bool {
	return NewCoordinates(c.Lon, c.Lat) != nil
}

func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lon, c.Lat})
}

func (c *Coordinates) UnmarshalJSON(b []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	c.Lon, c.Lat = pair[0], pair[1]
	return nil
}

type Event struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	VenueName        string           `json:"venueName"`
	LocationText     string           `json:"locationText"`
	Coordinates      *Coordinates     `json:"coordinates,omitempty"`
	Date             string           `json:"date"`
	Time             string           `json:"time"`
	RawDate          string           `json:"rawDate,omitempty"`
	Category         string           `json:"category"`
	PartySubcategory PartySubcategory `json:"partySubcategory,omitempty"`
	IsPartyEvent     bool             `json:"isPartyEvent"`
	Price            string           `json:"price,omitempty"`
	ImageURL         string           `json:"imageUrl"`
	SourceURL        string           `json:"sourceUrl"`
	TicketURL        string           `json:"ticketUrl"`
	Provider         string           `json:"provider"`
}

// StartTime parses RawDate. The display Date/Time strings are never parsed.
func (e Event) StartTime() (time.Time, bool) {
	if e.RawDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, e.RawDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ApplyClassification sets the party fields together so Category and
// IsPartyEvent never disagree. fallbackCategory is used for non-party events
// that would otherwise keep the "party" category.
func (e *Event) ApplyClassification(isParty bool, sub PartySubcategory, fallbackCategory string) {
	if isParty {
		if sub == "" || !sub.Valid() {
			sub = SubcategoryGeneral
		}
		e.Category = CategoryParty
		e.IsPartyEvent = true
		e.PartySubcategory = sub
		return
	}

	e.IsPartyEvent = false
	e.PartySubcategory = ""
	if e.Category == "" || strings.EqualFold(e.Category, CategoryParty) {
		e.Category = fallbackCategory
	}
	if e.Category == "" {
		e.Category = "general"
	}
}

// EnforceInvariants repairs events that arrive already canonical, e.g. from
// the fallback backend: party fields are reconciled and invalid coordinates
// dropped.
func (e *Event) EnforceInvariants() {
	if e.Coordinates != nil && !e.Coordinates.Valid() {
		e.Coordinates = nil
	}
	isParty := e.IsPartyEvent || strings.EqualFold(e.Category, CategoryParty)
	e.ApplyClassification(isParty, e.PartySubcategory, "general")
}
