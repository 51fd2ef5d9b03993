package tui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	nudgeLeft  key.Binding
	nudgeRight key.Binding
	jumpLeft   key.Binding
	jumpRight  key.Binding
	next       key.Binding
	prev       key.Binding
	play       key.Binding
	snap       key.Binding
	hide       key.Binding
	cut        key.Binding
	save       key.Binding
	help       key.Binding
	quit       key.Binding
	abort      key.Binding
}

var defaultKeymap = keymap{
	nudgeLeft: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "earlier"),
	),
	nudgeRight: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "later"),
	),
	jumpLeft: key.NewBinding(
		key.WithKeys("shift+left", "H"),
		key.WithHelp("shift+←", "1s earlier"),
	),
	jumpRight: key.NewBinding(
		key.WithKeys("shift+right", "L"),
		key.WithHelp("shift+→", "1s later"),
	),
	next: key.NewBinding(
		key.WithKeys("tab", "j"),
		key.WithHelp("tab", "next boundary"),
	),
	prev: key.NewBinding(
		key.WithKeys("shift+tab", "k"),
		key.WithHelp("shift+tab", "previous boundary"),
	),
	play: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p", "play/stop"),
	),
	snap: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "cut at playback marker"),
	),
	hide: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "hide marker"),
	),
	cut: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "cut session"),
	),
	save: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "save"),
	),
	help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "save and quit"),
	),
	abort: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "abort"),
	),
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.nudgeLeft, k.nudgeRight, k.next, k.play, k.cut, k.quit, k.help}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.nudgeLeft, k.nudgeRight, k.jumpLeft, k.jumpRight},
		{k.next, k.prev, k.play, k.snap, k.hide},
		{k.cut, k.save, k.quit, k.abort, k.help},
	}
}
