package normalizer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/stpnv0/EventRadar/internal/domain"
)

var absoluteLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05Z07:00",
}

var localLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var humanLayouts = []string{
	"Mon, Jan 2, 2006, 3:04 PM",
	"Mon, Jan 2, 2006 3:04 PM",
	"Mon, Jan 2, 2006",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

// parseStart picks the most authoritative timestamp: UTC start, then local
// start (in the venue timezone), then the human-readable date.
func parseStart(raw domain.RawEvent, loc *time.Location) (time.Time, bool) {
	if t, ok := parseFlexible(raw.StartTimeUTC, time.UTC); ok {
		return t, true
	}
	if t, ok := parseFlexible(raw.StartTime, loc); ok {
		return t, true
	}
	return parseHuman(raw.DateHumanReadable, loc)
}

func parseFlexible(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	// epoch seconds
	if len(s) >= 9 {
		if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.Unix(sec, 0), true
		}
	}
	return time.Time{}, false
}

// ranges such as "Fri, May 10, 2024, 10 – 11 PM" keep only the start
var rangeTail = regexp.MustCompile(`\s*[–—-]\s*[^,]*$`)

func parseHuman(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	candidates := []string{s, rangeTail.ReplaceAllString(s, "")}
	for _, c := range candidates {
		for _, layout := range humanLayouts {
			if t, err := time.ParseInLocation(layout, c, loc); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
