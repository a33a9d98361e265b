package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	enter  key.Binding
	pre    key.Binding
	irr    key.Binding
	add    key.Binding
	link   key.Binding
	del    key.Binding
	disc   key.Binding
	undisc key.Binding
	save   key.Binding
	reload key.Binding
	back   key.Binding
	yes    key.Binding
	no     key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		pre:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pre-existing")),
		irr:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "irrelevant")),
		add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add song")),
		link:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "link existing")),
		del:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete song")),
		disc:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute disc")),
		undisc: key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "unmute disc")),
		save:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save series")),
		reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.pre, k.irr},
		{k.add, k.link, k.del, k.disc},
		{k.save, k.reload, k.back, k.quit},
	}
}
