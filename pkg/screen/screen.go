package screen

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/term"
)

// Screen is where rendered frames end up.
type Screen interface {
	Clear() error
	Draw(frame string) error
}

type Terminal struct {
	out   *bufio.Writer
	isTTY bool
	clear func(w *bufio.Writer) error
}

// NewTerminal draws on stdout. Clearing is skipped when stdout is
// redirected, so the frames can be captured as plain text.
func NewTerminal() *Terminal {
	return &Terminal{
		out:   bufio.NewWriterSize(os.Stdout, 64*1024),
		isTTY: term.IsTerminal(int(os.Stdout.Fd())),
		clear: clearScreen,
	}
}

// NewWriter draws on w and never clears it, used by tests.
func NewWriter(w io.Writer) *Terminal {
	return &Terminal{
		out:   bufio.NewWriter(w),
		clear: clearScreen,
	}
}

func (t *Terminal) IsTTY() bool {
	return t.isTTY
}

func (t *Terminal) Clear() error {
	if !t.isTTY {
		return nil
	}
	return t.clear(t.out)
}

func (t *Terminal) Draw(frame string) error {
	if _, err := t.out.WriteString(frame); err != nil {
		return err
	}
	return t.out.Flush()
}
