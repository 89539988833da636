package progress

import (
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

var (
	mu       sync.Mutex
	out      io.Writer = os.Stderr
	Progress           = progressCreate(-1, "") // init as spinner
)

// SetOutput redirects the bar, stdout is reserved for frames.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	Progress = progressCreate(-1, "")
}

func ProgressSpinner(desc string) {
	mu.Lock()
	defer mu.Unlock()
	_ = Progress.Clear()
	Progress = progressCreate(-1, desc)
	_ = Progress.RenderBlank()
}

func ProgressReset(max int, desc string) {
	mu.Lock()
	defer mu.Unlock()
	Progress = progressCreate(max, desc)
}

func Add(n int) {
	mu.Lock()
	defer mu.Unlock()
	_ = Progress.Add(n)
}

func Finish() {
	mu.Lock()
	defer mu.Unlock()
	_ = Progress.Finish()
}

func progressCreate(max int, desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]/[reset]",
			SaucerHead:    "[green]/[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
