package domain

import (
	"encoding/json"
	"fmt"
)

// RawEvent is a provider record in its native shape.
type RawEvent struct {
	EventID           string       `json:"event_id"`
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	StartTimeUTC      string       `json:"start_time_utc"`
	StartTime         string       `json:"start_time"`
	DateHumanReadable string       `json:"date_human_readable"`
	Link              string       `json:"link"`
	Thumbnail         string       `json:"thumbnail"`
	TicketLinks       []TicketLink `json:"ticket_links"`
	Price             FlexString   `json:"price"`
	Tags              []string     `json:"tags"`
	Venue             *RawVenue    `json:"venue"`
}

type TicketLink struct {
	Source string `json:"source"`
	Link   string `json:"link"`
}

type RawVenue struct {
	Name        string   `json:"name"`
	FullAddress string   `json:"full_address"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Country     string   `json:"country"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Subtype     string   `json:"subtype"`
	Subtypes    []string `json:"subtypes"`
	Timezone    string   `json:"timezone"`
}

// VenueHints returns venue subtype metadata used by the classifier.
func (r RawEvent) VenueHints() []string {
	if r.Venue == nil {
		return nil
	}
	hints := make([]string, 0, len(r.Venue.Subtypes)+1)
	if r.Venue.Subtype != "" {
		hints = append(hints, r.Venue.Subtype)
	}
	return append(hints, r.Venue.Subtypes...)
}

// FlexString accepts a JSON string or number; providers are not consistent.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("flex string: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

// SearchResult is the outcome of one logical provider search. Dropped counts
// records that were present in the response but could not be decoded.
type SearchResult struct {
	Events    []RawEvent
	Query     string
	FetchSize int
	Attempts  int
	Dropped   int
}

// Complete reports whether the provider returned fewer rows than asked for,
// meaning nothing beyond the fetch window exists.
func (r SearchResult) Complete() bool {
	return len(r.Events)+r.Dropped < r.FetchSize
}
