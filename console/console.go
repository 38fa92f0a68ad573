// Package console connects inspector sessions to a terminal: line editing and
// history through readline, and page sizing from the terminal height.
package console

import (
	"io"
	"os"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/reoring/goinspect"
)

// Config holds console configuration.
type Config struct {
	HistoryFile string
	Stdin       io.ReadCloser
	Stdout      io.Writer
}

// Console is a goinspect.LineReader backed by readline.
type Console struct {
	rl *readline.Instance
}

var _ goinspect.LineReader = (*Console)(nil)

// New opens a readline instance.
func New(cfg Config) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdin:           cfg.Stdin,
		Stdout:          cfg.Stdout,
	})
	if err != nil {
		return nil, err
	}
	return &Console{rl: rl}, nil
}

// ReadLine shows prompt and reads one line. An interrupt discards the line
// being edited and yields an empty line.
func (c *Console) ReadLine(prompt string) (string, error) {
	c.rl.SetPrompt(prompt)
	line, err := c.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", nil
	}
	return line, err
}

func (c *Console) Close() error { return c.rl.Close() }

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool { return term.IsTerminal(int(f.Fd())) }

// reservedRows are the terminal rows not used for fields: the summary line,
// its detail lines, the footer and the prompt.
const reservedRows = 6

// PageLength derives a page length from the height of the terminal on f. It
// returns fallback when f is not a terminal or the size is unknown.
func PageLength(f *os.File, fallback int) int {
	if !IsTerminal(f) {
		return fallback
	}
	_, h, err := term.GetSize(int(f.Fd()))
	if err != nil || h <= reservedRows {
		return fallback
	}
	return h - reservedRows
}
