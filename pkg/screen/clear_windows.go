//go:build windows

package screen

import (
	"bufio"
	"os"
	"os/exec"
)

func clearScreen(w *bufio.Writer) error {
	if err := w.Flush(); err != nil {
		return err
	}
	cmd := exec.Command("cmd", "/c", "cls")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}
