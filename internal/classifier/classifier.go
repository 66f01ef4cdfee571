// Package classifier labels events as party events and assigns a party
// subcategory. The rules are keyword heuristics: results are best-effort, not
// ground truth.
//
// Matching is case-insensitive but anchored at word starts rather than plain
// substring containment: "club" matches "Club Night" and "clubbing", not
// "subclub"; "dj" does not match "afterdj".
package classifier

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/stpnv0/EventRadar/internal/domain"
)

// Result holds the outcome of classifying one event.
type Result struct {
	IsParty     bool
	Subcategory domain.PartySubcategory
}

// Keywords match case-insensitively at the start of a word, so "club" matches
// "clubs" but "dj" does not match "adjust".
var partyKeywords = []string{
	"party", "parties", "club", "nightclub", "dj", "nightlife", "dance",
	"festival", "rave", "brunch", "rooftop", "mixer", "gala", "celebration",
	"bash", "disco", "edm", "techno", "house music", "hip hop", "afterparty",
	"after party", "lounge", "bar crawl", "pub crawl", "happy hour",
	"karaoke", "fiesta", "soiree", "oktoberfest",
}

var venueTypes = []string{"club", "bar", "lounge", "nightlife", "dancing"}

type rule struct {
	sub      domain.PartySubcategory
	keywords []string
}

// Order matters: the first matching group wins.
var subcategoryRules = []rule{
	{domain.SubcategoryFestival, []string{"festival", "fest", "oktoberfest", "carnival"}},
	{domain.SubcategoryBrunch, []string{"brunch", "bottomless", "mimosa"}},
	{domain.SubcategoryDayParty, []string{"day party", "daytime", "pool party", "day drinking", "afternoon"}},
	{domain.SubcategoryNightclub, []string{"nightclub", "club", "dj", "rave", "edm", "techno", "house music", "nightlife", "after hours", "afterparty"}},
	{domain.SubcategoryNetworking, []string{"networking", "mixer", "meetup", "professionals", "happy hour"}},
	{domain.SubcategoryRooftop, []string{"rooftop", "terrace", "skyline"}},
	{domain.SubcategoryCelebration, []string{"celebration", "birthday", "anniversary", "gala", "new year", "halloween", "graduation"}},
}

// Classify is deterministic: the same inputs always produce the same Result.
func Classify(title, description string, venueHints []string) Result {
	text := normalizeText(title + " " + description)

	if !containsAny(text, partyKeywords) && !venueMatches(venueHints) {
		return Result{}
	}

	for _, r := range subcategoryRules {
		if containsAny(text, r.keywords) {
			return Result{IsParty: true, Subcategory: r.sub}
		}
	}
	return Result{IsParty: true, Subcategory: domain.SubcategoryGeneral}
}

var categoryRules = []struct {
	category string
	keywords []string
}{
	{"music", []string{"concert", "live music", "band", "orchestra", "symphony", "jazz", "tour"}},
	{"sports", []string{"game", "vs", "match", "tournament", "marathon", "race", "league"}},
	{"comedy", []string{"comedy", "stand up", "standup", "improv"}},
	{"arts", []string{"theatre", "theater", "exhibit", "gallery", "museum", "art", "film", "opera", "ballet"}},
	{"food", []string{"food", "tasting", "wine", "beer", "culinary", "dinner"}},
	{"business", []string{"conference", "summit", "workshop", "seminar", "webinar", "startup"}},
	{"family", []string{"kids", "family", "children"}},
}

// Category returns a general-purpose category for non-party events.
func Category(title, description string) string {
	text := normalizeText(title + " " + description)
	for _, r := range categoryRules {
		if containsAny(text, r.keywords) {
			return r.category
		}
	}
	return "general"
}

// Annotate classifies e in place. Category and IsPartyEvent are always set
// together.
func Annotate(e *domain.Event, venueHints []string) Result {
	res := Classify(e.Title, e.Description, venueHints)
	e.ApplyClassification(res.IsParty, res.Subcategory, Category(e.Title, e.Description))
	return res
}

// normalizeText folds case and turns every non-alphanumeric rune into a
// space. The result starts with a space so word-start matching is a plain
// substring search for " "+keyword.
func normalizeText(s string) string {
	// a Caser keeps state, so one is created per call
	folded := cases.Fold().String(s)

	var b strings.Builder
	b.Grow(len(folded) + 1)
	b.WriteByte(' ')
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, " "+kw) {
			return true
		}
	}
	return false
}

func venueMatches(hints []string) bool {
	for _, h := range hints {
		for _, tok := range strings.Fields(normalizeText(h)) {
			for _, vt := range venueTypes {
				if tok == vt || strings.HasSuffix(tok, vt) {
					return true
				}
			}
		}
	}
	return false
}
