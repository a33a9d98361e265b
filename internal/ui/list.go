package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/packsmith/internal/models"
	"github.com/desertthunder/packsmith/internal/reconcile"
)

var (
	_ list.Item = entryItem{}
	_ list.Item = candidateItem{}
)

// entryItem wraps [models.TracklistEntry] to implement [list.Item].
type entryItem struct {
	entry models.TracklistEntry
}

func (i entryItem) FilterValue() string { return i.entry.TitleClean }
func (i entryItem) Title() string {
	return fmt.Sprintf("%d.%02d %s", i.entry.Disc(), i.entry.TrackNumber, i.entry.TitleClean)
}
func (i entryItem) Description() string {
	desc := reconcile.Classify(i.entry)
	if i.entry.Irrelevant {
		desc = fmt.Sprintf("%s • irrelevant", desc)
	}
	return desc
}

// candidateItem wraps [models.Song] to implement [list.Item] for the link picker.
type candidateItem struct {
	song *models.Song
}

func (i candidateItem) FilterValue() string { return i.song.Title }
func (i candidateItem) Title() string       { return i.song.Title }
func (i candidateItem) Description() string {
	desc := i.song.Artist
	if i.song.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.song.Album)
	}
	return desc
}
