//go:build !windows

package screen

import "bufio"

const ansiClear = "\033[H\033[2J"

func clearScreen(w *bufio.Writer) error {
	_, err := w.WriteString(ansiClear)
	return err
}
