package models

import (
	"regexp"
	"sort"
	"strings"
)

// TracklistEntry represents one canonical track position in an album listing,
// annotated with local resolution state. Entries are ephemeral: rebuilt from the
// catalog plus current pack state on every reconciliation load.
type TracklistEntry struct {
	DiscNumber  int
	TrackNumber int
	TitleClean  string
	ExternalID  string // catalog track id when the catalog offers one
	Official    bool   // exists as commercial DLC; immutable from the client
	PreExisting bool   // user asserts it was completed outside the system
	Irrelevant  bool   // user asserts it should not count toward coverage
	InPack      bool
	SongID      string // linked song when InPack is true
	Status      string // mirrored from the linked song when present
}

// Key returns the entry's identity key: the external id when present, else the
// normalized title. Used for all flag updates and deduplication.
func (e TracklistEntry) Key() string {
	if e.ExternalID != "" {
		return e.ExternalID
	}
	return NormalizeTitle(e.TitleClean)
}

// Disc returns the effective disc number, defaulting to 1 when absent.
func (e TracklistEntry) Disc() int {
	if e.DiscNumber <= 0 {
		return 1
	}
	return e.DiscNumber
}

// SortEntries orders entries by disc number ascending (default 1 when absent),
// then track number ascending (default 0 when absent). The sort is stable so
// identical input always yields identical display order.
func SortEntries(entries []TracklistEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Disc() != entries[j].Disc() {
			return entries[i].Disc() < entries[j].Disc()
		}
		return entries[i].TrackNumber < entries[j].TrackNumber
	})
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	punctRe      = regexp.MustCompile(`[^\p{L}\p{N} ]+`)

	// Transient formatting tags appended by catalogs: remaster years,
	// deluxe/anniversary editions, in parentheses or after a dash.
	remasterTagRe = regexp.MustCompile(`(?i)\s*(\((\d{4}\s+)?remaster(ed)?(\s+\d{4})?\)|\((deluxe|anniversary|special|expanded)(\s+(edition|version))?\)|-\s*(\d{4}\s+)?remaster(ed)?(\s+\d{4})?)\s*$`)
)

// NormalizeTitle lowercases, trims, strips punctuation, and collapses whitespace
// so catalog titles and song titles compare consistently.
func NormalizeTitle(title string) string {
	t := strings.ToLower(strings.TrimSpace(title))
	t = punctRe.ReplaceAllString(t, "")
	t = whitespaceRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// CleanTitle strips trailing remaster/edition tags from a title.
// Applied repeatedly so stacked tags ("Song (Remastered 2009) (Deluxe Edition)") all go.
func CleanTitle(title string) string {
	t := strings.TrimSpace(title)
	for {
		stripped := remasterTagRe.ReplaceAllString(t, "")
		stripped = strings.TrimSpace(stripped)
		if stripped == t || stripped == "" {
			break
		}
		t = stripped
	}
	return t
}

// Capitalize uppercases the first letter of every word, for series provisioning
// where artist and album names are stored in display form.
func Capitalize(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
