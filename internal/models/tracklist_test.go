package models

import (
	"testing"
)

func TestEntryKey(t *testing.T) {
	tc := []struct {
		name  string
		entry TracklistEntry
		want  string
	}{
		{
			name:  "external id wins",
			entry: TracklistEntry{ExternalID: "cat-123", TitleClean: "Some Song"},
			want:  "cat-123",
		},
		{
			name:  "falls back to normalized title",
			entry: TracklistEntry{TitleClean: "  Some   Song!  "},
			want:  "some song",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.Key(); got != tt.want {
				t.Errorf("Key() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortEntries(t *testing.T) {
	// disc_number=[2,1,1,2], track_number=[1,3,1,2] must sort to discs
	// [1,1,2,2] with the track order preserved by the secondary key.
	entries := []TracklistEntry{
		{DiscNumber: 2, TrackNumber: 1, TitleClean: "d2t1"},
		{DiscNumber: 1, TrackNumber: 3, TitleClean: "d1t3"},
		{DiscNumber: 1, TrackNumber: 1, TitleClean: "d1t1"},
		{DiscNumber: 2, TrackNumber: 2, TitleClean: "d2t2"},
	}

	SortEntries(entries)

	wantDiscs := []int{1, 1, 2, 2}
	wantTracks := []int{1, 3, 1, 2}
	for i := range entries {
		if entries[i].DiscNumber != wantDiscs[i] || entries[i].TrackNumber != wantTracks[i] {
			t.Errorf("position %d = disc %d track %d, want disc %d track %d",
				i, entries[i].DiscNumber, entries[i].TrackNumber, wantDiscs[i], wantTracks[i])
		}
	}
}

func TestSortEntriesDefaults(t *testing.T) {
	// Missing disc numbers default to 1; missing track numbers default to 0.
	entries := []TracklistEntry{
		{DiscNumber: 2, TrackNumber: 1, TitleClean: "d2t1"},
		{DiscNumber: 0, TrackNumber: 2, TitleClean: "implicit-disc-1"},
		{DiscNumber: 1, TrackNumber: 0, TitleClean: "implicit-track-0"},
	}

	SortEntries(entries)

	if entries[0].TitleClean != "implicit-track-0" {
		t.Errorf("expected implicit track 0 first, got %s", entries[0].TitleClean)
	}
	if entries[1].TitleClean != "implicit-disc-1" {
		t.Errorf("expected implicit disc 1 second, got %s", entries[1].TitleClean)
	}
	if entries[2].TitleClean != "d2t1" {
		t.Errorf("expected disc 2 last, got %s", entries[2].TitleClean)
	}
}

func TestSortEntriesDeterministic(t *testing.T) {
	build := func() []TracklistEntry {
		return []TracklistEntry{
			{DiscNumber: 1, TrackNumber: 2, TitleClean: "a"},
			{DiscNumber: 1, TrackNumber: 2, TitleClean: "b"},
			{DiscNumber: 1, TrackNumber: 1, TitleClean: "c"},
		}
	}

	first := build()
	second := build()
	SortEntries(first)
	SortEntries(second)

	for i := range first {
		if first[i].TitleClean != second[i].TitleClean {
			t.Fatalf("sort is not deterministic at position %d: %s vs %s", i, first[i].TitleClean, second[i].TitleClean)
		}
	}
}

func TestNormalizeTitle(t *testing.T) {
	tc := []struct {
		name  string
		title string
		want  string
	}{
		{name: "basic", title: "Song Title", want: "song title"},
		{name: "whitespace", title: "  Song   Title  ", want: "song title"},
		{name: "mixed case", title: "SoNg TiTlE", want: "song title"},
		{name: "punctuation", title: "Don't Stop (Live)", want: "dont stop live"},
		{name: "unicode letters kept", title: "Señorita", want: "señorita"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTitle(tt.title); got != tt.want {
				t.Errorf("NormalizeTitle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCleanTitle(t *testing.T) {
	tc := []struct {
		name  string
		title string
		want  string
	}{
		{name: "no tag", title: "Plain Song", want: "Plain Song"},
		{name: "parenthesized remaster", title: "Song (Remastered 2009)", want: "Song"},
		{name: "year first", title: "Song (2011 Remaster)", want: "Song"},
		{name: "dash remaster", title: "Song - 2011 Remaster", want: "Song"},
		{name: "deluxe edition", title: "Song (Deluxe Edition)", want: "Song"},
		{name: "stacked tags", title: "Song (Remastered 2009) (Deluxe Edition)", want: "Song"},
		{name: "mid-title parens kept", title: "Time (Clock of the Heart)", want: "Time (Clock of the Heart)"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTitle(tt.title); got != tt.want {
				t.Errorf("CleanTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	tc := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase words", in: "the dark side", want: "The Dark Side"},
		{name: "already capitalized", in: "Abbey Road", want: "Abbey Road"},
		{name: "extra spacing", in: "  pink   floyd ", want: "Pink Floyd"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Capitalize(tt.in); got != tt.want {
				t.Errorf("Capitalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
