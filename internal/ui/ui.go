package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/packsmith/internal/models"
	"github.com/desertthunder/packsmith/internal/reconcile"
	"github.com/desertthunder/packsmith/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	EntryListView ViewState = iota
	LinkPickerView
	ConfirmDeleteView
	ResultView
)

// Model represents the TUI application state for a reconciliation session.
type Model struct {
	ctx       context.Context
	view      ViewState
	session   *reconcile.Session
	editPort  *reconcile.EditPort
	title     string
	width     int
	height    int
	entryList list.Model
	candList  list.Model
	target    string // entry key pending link or delete
	status    string // transient message shown under the list
	result    *models.AlbumSeries
	err       error
	listReady bool
	help      help.Model
	keys      keyMap
}

type entriesLoadedMsg struct {
	err error
}

type mutatedMsg struct {
	err error
}

type deleteAttemptMsg struct {
	entryKey string
	err      error
}

type candidatesLoadedMsg struct {
	songs []*models.Song
	err   error
}

type seriesSavedMsg struct {
	series *models.AlbumSeries
	err    error
}

// NewModel creates a TUI model over a reconciliation session. editPort is nil
// in create mode, which disables linking and deletion and enables saving.
func NewModel(ctx context.Context, session *reconcile.Session, editPort *reconcile.EditPort, title string) *Model {
	return &Model{
		ctx:      ctx,
		view:     EntryListView,
		session:  session,
		editPort: editPort,
		title:    title,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

func (m *Model) createMode() bool { return m.editPort == nil }

// Init loads the tracklist projection.
func (m *Model) Init() tea.Cmd {
	return m.loadEntries()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.entryList.Width() == 0 {
			m.entryList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.candList.Width() == 0 {
			m.candList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case EntryListView:
			return m.handleEntryListKeys(msg)
		case LinkPickerView:
			return m.handleLinkPickerKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case entriesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.rebuildEntryList()
		return m, nil

	case mutatedMsg:
		m.status = ""
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		m.rebuildEntryList()
		m.view = EntryListView
		return m, nil

	case deleteAttemptMsg:
		if errors.Is(msg.err, shared.ErrConfirmRequired) {
			m.target = msg.entryKey
			m.view = ConfirmDeleteView
			return m, nil
		}
		m.status = ""
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		m.rebuildEntryList()
		return m, nil

	case candidatesLoadedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		if len(msg.songs) == 0 {
			m.status = "no unclaimed songs available to link"
			return m, nil
		}
		items := make([]list.Item, len(msg.songs))
		for i, song := range msg.songs {
			items[i] = candidateItem{song: song}
		}
		m.candList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.candList.Title = "Link Existing Song"
		m.candList.SetSize(m.width-4, m.height-8)
		m.view = LinkPickerView
		return m, nil

	case seriesSavedMsg:
		if errors.Is(msg.err, shared.ErrNothingSelected) {
			m.status = "select at least one track before saving"
			return m, nil
		}
		m.result = msg.series
		m.err = msg.err
		m.view = ResultView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case EntryListView:
		return m.renderEntryList()
	case LinkPickerView:
		return m.renderLinkPicker()
	case ConfirmDeleteView:
		return m.renderConfirm()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleEntryListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "p":
		if entry, ok := m.selectedEntry(); ok {
			return m, m.mutate(func() error {
				return m.session.TogglePreExisting(m.ctx, entry.Key())
			})
		}
	case "i":
		if entry, ok := m.selectedEntry(); ok {
			return m, m.mutate(func() error {
				return m.session.ToggleIrrelevant(m.ctx, entry.Key())
			})
		}
	case "a":
		if entry, ok := m.selectedEntry(); ok {
			return m, m.mutate(func() error {
				return m.session.AddMissing(m.ctx, entry.Key())
			})
		}
	case "l":
		if m.createMode() {
			m.status = "linking requires an existing series"
			return m, nil
		}
		if entry, ok := m.selectedEntry(); ok {
			m.target = entry.Key()
			return m, m.loadCandidates()
		}
	case "x":
		if m.createMode() {
			m.status = "deletion requires an existing series"
			return m, nil
		}
		if entry, ok := m.selectedEntry(); ok {
			return m, m.attemptDelete(entry.Key(), false)
		}
	case "m":
		if entry, ok := m.selectedEntry(); ok {
			disc := entry.Disc()
			return m, m.mutate(func() error {
				return m.session.MarkDisc(m.ctx, disc, true)
			})
		}
	case "M":
		if entry, ok := m.selectedEntry(); ok {
			disc := entry.Disc()
			return m, m.mutate(func() error {
				return m.session.MarkDisc(m.ctx, disc, false)
			})
		}
	case "s":
		if m.createMode() {
			return m, m.saveSeries()
		}
		m.status = "series already exists; changes are saved as you go"
		return m, nil
	case "r":
		return m, m.loadEntries()
	}

	var cmd tea.Cmd
	m.entryList, cmd = m.entryList.Update(msg)
	return m, cmd
}

func (m *Model) handleLinkPickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = EntryListView
		return m, nil
	case "enter":
		selected := m.candList.SelectedItem()
		if selected != nil {
			if c, ok := selected.(candidateItem); ok {
				entryKey := m.target
				songID := c.song.ID
				return m, m.mutate(func() error {
					return m.session.LinkExisting(m.ctx, entryKey, songID)
				})
			}
		}
	}

	var cmd tea.Cmd
	m.candList, cmd = m.candList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = EntryListView
		return m, nil
	case "y":
		return m, m.attemptDelete(m.target, true)
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case EntryListView:
		m.entryList, cmd = m.entryList.Update(msg)
	case LinkPickerView:
		m.candList, cmd = m.candList.Update(msg)
	}
	return m, cmd
}

func (m *Model) selectedEntry() (models.TracklistEntry, bool) {
	selected := m.entryList.SelectedItem()
	if selected == nil {
		return models.TracklistEntry{}, false
	}
	item, ok := selected.(entryItem)
	return item.entry, ok
}

func (m *Model) rebuildEntryList() {
	entries := m.session.Entries()
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = entryItem{entry: entry}
	}

	if !m.listReady {
		m.entryList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.entryList.Title = m.title
		m.entryList.SetSize(m.width-4, m.height-8)
		m.listReady = true
		return
	}

	cursor := m.entryList.Index()
	m.entryList.SetItems(items)
	if cursor < len(items) {
		m.entryList.Select(cursor)
	}
}

func (m *Model) loadEntries() tea.Cmd {
	return func() tea.Msg {
		return entriesLoadedMsg{err: m.session.Load(m.ctx)}
	}
}

func (m *Model) mutate(fn func() error) tea.Cmd {
	return func() tea.Msg {
		return mutatedMsg{err: fn()}
	}
}

func (m *Model) attemptDelete(entryKey string, confirmed bool) tea.Cmd {
	return func() tea.Msg {
		err := m.session.DeleteLinkedSong(m.ctx, entryKey, confirmed)
		return deleteAttemptMsg{entryKey: entryKey, err: err}
	}
}

func (m *Model) loadCandidates() tea.Cmd {
	return func() tea.Msg {
		songs, err := m.editPort.PackSongs()
		if err != nil {
			return candidatesLoadedMsg{err: err}
		}
		return candidatesLoadedMsg{songs: m.session.Candidates(songs, m.editPort.Album())}
	}
}

func (m *Model) saveSeries() tea.Cmd {
	return func() tea.Msg {
		series, err := m.session.Save(m.ctx)
		return seriesSavedMsg{series: series, err: err}
	}
}

func (m *Model) renderEntryList() string {
	coverage := styles.ok.Render(fmt.Sprintf("Coverage: %d%%", m.session.Coverage()))

	var status string
	if m.status != "" {
		status = "\n" + styles.warn.Render(m.status)
	}

	helpKeys := []key.Binding{m.keys.pre, m.keys.irr, m.keys.add, m.keys.link, m.keys.disc, m.keys.quit}
	if m.createMode() {
		helpKeys = []key.Binding{m.keys.pre, m.keys.irr, m.keys.add, m.keys.disc, m.keys.save, m.keys.quit}
	}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s%s\n%s", m.entryList.View(), coverage, status, helpView)
}

func (m *Model) renderLinkPicker() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.candList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render("Delete in-progress song?")
	info := "\nThis song has charting work recorded. Deleting it cannot be undone.\n"

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Save failed: %v\n\nPress q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress q to quit")
	}

	title := styles.ok.Render("✓ Album Series Created")
	info := fmt.Sprintf(
		"\nSeries: %s - %s (#%d)\nCoverage: %d%%\n",
		m.result.ArtistName,
		m.result.AlbumName,
		m.result.Sequence,
		m.session.Coverage(),
	)

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}
