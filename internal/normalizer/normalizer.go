package normalizer

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/stpnv0/EventRadar/internal/domain"
)

const (
	LocationUnknown  = "Location not specified"
	PlaceholderImage = "https://placehold.co/600x400?text=Event"

	DisplayDateLayout = "Mon, Jan 2, 2006"
	DisplayTimeLayout = "3:04 PM"
)

// Normalizer maps provider records onto the canonical event model.
type Normalizer struct {
	provider string
}

func New(provider string) *Normalizer {
	return &Normalizer{provider: provider}
}

func (n *Normalizer) Provider() string { return n.provider }

// Normalize converts one raw record. It never invents coordinates.
func (n *Normalizer) Normalize(raw domain.RawEvent) (domain.Event, error) {
	providerID := strings.TrimSpace(raw.EventID)
	title := strings.TrimSpace(raw.Name)
	if providerID == "" && title == "" {
		return domain.Event{}, domain.ErrIrrecoverable
	}

	loc := venueLocation(raw.Venue)
	start, ok := parseStart(raw, loc)

	if providerID == "" {
		providerID = syntheticID(title, raw.StartTimeUTC+raw.StartTime+raw.DateHumanReadable)
	}
	if title == "" {
		title = "Untitled event"
	}

	e := domain.Event{
		ID:           n.EventID(providerID),
		Title:        title,
		Description:  strings.TrimSpace(raw.Description),
		LocationText: locationText(raw.Venue),
		Coordinates:  coordinates(raw.Venue),
		Price:        strings.TrimSpace(string(raw.Price)),
		Provider:     n.provider,
	}
	if raw.Venue != nil {
		e.VenueName = strings.TrimSpace(raw.Venue.Name)
	}
	if ok {
		e.RawDate = start.UTC().Format(time.RFC3339)
		local := start.In(loc)
		e.Date = local.Format(DisplayDateLayout)
		e.Time = local.Format(DisplayTimeLayout)
	} else {
		e.Date = strings.TrimSpace(raw.DateHumanReadable)
	}

	e.ImageURL = firstNonEmpty(raw.Thumbnail, PlaceholderImage)
	ticket := ""
	if len(raw.TicketLinks) > 0 {
		ticket = raw.TicketLinks[0].Link
	}
	e.SourceURL = firstNonEmpty(raw.Link, ticket)
	e.TicketURL = firstNonEmpty(ticket, raw.Link)

	return e, nil
}

// Annotator enriches a normalized event using the record it came from.
type Annotator func(e *domain.Event, raw domain.RawEvent)

// NormalizeAll converts a batch. Records that cannot be normalized are
// reported in errs; duplicate ids keep their first occurrence. annotate may
// be nil.
func (n *Normalizer) NormalizeAll(raws []domain.RawEvent, annotate Annotator) (events []domain.Event, errs []error) {
	events = make([]domain.Event, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for i, raw := range raws {
		e, err := n.Normalize(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		if annotate != nil {
			annotate(&e, raw)
		}
		events = append(events, e)
	}
	return events, errs
}

// EventID namespaces a provider id.
func (n *Normalizer) EventID(providerID string) string {
	return n.provider + "_" + providerID
}

// ProviderID strips the provider namespace from an event id, if present.
func (n *Normalizer) ProviderID(eventID string) string {
	return strings.TrimPrefix(eventID, n.provider+"_")
}

func syntheticID(title, when string) string {
	sum := sha1.Sum([]byte(strings.ToLower(title) + "|" + when))
	return hex.EncodeToString(sum[:])[:16]
}

func locationText(v *domain.RawVenue) string {
	if v == nil {
		return LocationUnknown
	}
	if s := strings.TrimSpace(v.FullAddress); s != "" {
		return s
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{v.City, v.State, v.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	return firstNonEmpty(strings.TrimSpace(v.Name), LocationUnknown)
}

func coordinates(v *domain.RawVenue) *domain.Coordinates {
	if v == nil || v.Latitude == nil || v.Longitude == nil {
		return nil
	}
	return domain.NewCoordinates(*v.Longitude, *v.Latitude)
}

func venueLocation(v *domain.RawVenue) *time.Location {
	if v == nil || v.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(v.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
