package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/wricardo/supergroups/game/engine"
)

const helpText = `Commands (press enter after each):
  <n> or t <n>   select or deselect the item in slot n (item ids like t07 work too)
  g              submit the selected four as a guess
  c              clear the selection
  s              shuffle the board
  h              show this help
  q              quit (esc or ctrl+c also quit)`

var (
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	promptStyle = titleStyle
)

// model drives one game. Commands are typed on a prompt line and applied to
// the engine when enter is pressed.
type model struct {
	eng      engine.Engine
	input    string
	note     string
	quitting bool
}

func newModel(eng engine.Engine) model {
	return model{eng: eng, note: helpText}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(key.Runes)
	case tea.KeyEnter:
		line := strings.TrimSpace(m.input)
		m.input = ""
		if line == "" {
			return m, nil
		}

		quit, note, err := execute(line, m.eng)
		m.note = note
		if err != nil {
			m.note = err.Error()
		}
		if quit || m.eng.IsWon() {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(Render(m.eng.GetState()))

	if m.eng.IsWon() {
		b.WriteString(fmt.Sprintf("Finished with %d wrong guesses.\n", m.eng.IncorrectGuesses()))
		return b.String()
	}
	if m.quitting {
		return b.String()
	}
	if m.note != "" {
		b.WriteString(noteStyle.Render(m.note))
		b.WriteString("\n")
	}
	b.WriteString(promptStyle.Render("> "))
	b.WriteString(m.input)
	return b.String()
}

// Play runs an interactive game on in and out until the player quits or
// wins, or ctx is cancelled.
func Play(ctx context.Context, in io.Reader, out io.Writer, eng engine.Engine) error {
	p := tea.NewProgram(newModel(eng),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("terminal: %w", err)
	}
	return nil
}

var errUnknownCommand = errors.New("unknown command, type h for help")

// execute applies one command line. It reports whether the player quit and
// a note to show under the board.
func execute(line string, eng engine.Engine) (bool, string, error) {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "q", "quit", "exit":
		return true, "", nil
	case "h", "help", "?":
		return false, helpText, nil
	case "g", "guess":
		outcome := eng.SubmitGuess()
		log.Debug().Bool("accepted", outcome.Accepted).Str("reason", string(outcome.Reason)).Msg("guess")
		if outcome.Message != eng.GetState().Message {
			return false, outcome.Message, nil
		}
		return false, "", nil
	case "c", "clear":
		eng.ClearSelection()
		return false, "", nil
	case "s", "shuffle":
		eng.Shuffle()
		return false, "", nil
	case "t", "toggle":
		if len(fields) != 2 {
			return false, "", errors.New("usage: t <n>")
		}
		return false, "", toggle(fields[1], eng)
	default:
		if len(fields) == 1 {
			return false, "", toggle(fields[0], eng)
		}
		return false, "", errUnknownCommand
	}
}

// toggle resolves a 1-based slot number or an item id and toggles it
func toggle(target string, eng engine.Engine) error {
	itemID := strings.ToLower(target)
	if n, err := strconv.Atoi(target); err == nil {
		items := eng.Items()
		if n < 1 || n > len(items) {
			return fmt.Errorf("no item in slot %d", n)
		}
		itemID = items[n-1].ID
	}

	if _, err := eng.Toggle(itemID); err != nil {
		if errors.Is(err, engine.ErrItemNotFound) {
			return fmt.Errorf("no item %q on the board", target)
		}
		return err
	}
	return nil
}
