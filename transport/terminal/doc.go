// Package terminal plays Super Groups in a terminal.
//
// Render draws a board snapshot with lipgloss: word tiles in plain boxes,
// category tokens in rounded boxes listing their words, the selection in
// thick boxes and solved super-groups on their colour. Play runs a
// bubbletea program that applies one command per enter press to an engine:
//
//	<n>, t <n>   toggle the item in slot n (or by id, e.g. t07, c3)
//	g            guess
//	c            clear selection
//	s            shuffle
//	h            help
//	q            quit (esc and ctrl+c also work)
package terminal
