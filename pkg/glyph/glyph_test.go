package glyph

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1F47E/go-termreel/pkg/errs"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func savePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frame-0000001.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIndexTruncates(t *testing.T) {
	ramps := []Ramp{Ramp(" #"), Ramp(" .:"), DefaultRamp, Ramp(" .:-=+*#%@")}
	for _, ramp := range ramps {
		l := len(ramp)
		for v := 0; v <= 255; v++ {
			want := v * (l - 1) / 255
			got := ramp.Index(uint8(v))
			if got != want {
				t.Errorf("ramp %q, v=%d: got %d, want %d", string(ramp), v, got, want)
			}
		}
		if got := ramp.Index(0); got != 0 {
			t.Errorf("ramp %q: v=0 got %d, want 0", string(ramp), got)
		}
		if got := ramp.Index(255); got != l-1 {
			t.Errorf("ramp %q: v=255 got %d, want %d", string(ramp), got, l-1)
		}
	}
}

func TestIndexNeverRounds(t *testing.T) {
	// 127/255*1 = 0.498 and 254/255*11 = 10.96 both truncate down
	if got := Ramp(" #").Index(127); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
	if got := DefaultRamp.Index(254); got != 10 {
		t.Errorf("got %d, want 10", got)
	}
}

func TestMapShape(t *testing.T) {
	testCases := []struct {
		name string
		w, h int
	}{
		{name: "square", w: 2, h: 2},
		{name: "default grid", w: 100, h: 20},
		{name: "single column", w: 1, h: 7},
		{name: "single row", w: 9, h: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			img := image.NewGray(image.Rect(0, 0, tc.w, tc.h))
			for i := range img.Pix {
				img.Pix[i] = uint8(i * 37)
			}
			out := Map(img, tc.w, tc.h, DefaultRamp)

			if n := strings.Count(out, "\n"); n != tc.h {
				t.Errorf("got %d line breaks, want %d", n, tc.h)
			}
			lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			for i, line := range lines {
				if n := len([]rune(line)); n != tc.w {
					t.Errorf("line %d: got %d chars, want %d", i, n, tc.w)
				}
			}
		})
	}
}

func TestMapSolid(t *testing.T) {
	ramp := Ramp(" #")
	testCases := []struct {
		name  string
		color color.Color
		want  string
	}{
		{name: "black", color: color.Black, want: "  \n  \n"},
		{name: "white", color: color.White, want: "##\n##\n"},
		{name: "mid gray", color: color.Gray{Y: 128}, want: "  \n  \n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Map(solid(2, 2, tc.color), 2, 2, ramp)
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMapRowOrder(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	copy(img.Pix, []uint8{0, 255, 0, 255, 0, 255})
	got := Map(img, 3, 2, Ramp(" #"))
	want := " # \n# #\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMapOffsetBounds(t *testing.T) {
	img := solid(4, 4, color.Black)
	img.Set(2, 2, color.White)
	sub := img.SubImage(image.Rect(2, 2, 4, 4))
	got := Map(sub, 2, 2, Ramp(" #"))
	want := "# \n  \n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMapFile(t *testing.T) {
	path := savePNG(t, solid(2, 2, color.White))
	got, err := MapFile(path, 2, 2, Ramp(" #"))
	if err != nil {
		t.Fatalf("MapFile: %v", err)
	}
	if got != "##\n##\n" {
		t.Errorf("got %q, want %q", got, "##\n##\n")
	}
}

func TestMapFileErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "frame-0000002.png")
	if err := os.WriteFile(garbage, []byte("definitely not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	small := savePNG(t, solid(1, 1, color.Black))

	testCases := []struct {
		name string
		path string
		ramp Ramp
	}{
		{name: "missing", path: filepath.Join(dir, "frame-0000009.png"), ramp: DefaultRamp},
		{name: "garbage", path: garbage, ramp: DefaultRamp},
		{name: "too small", path: small, ramp: DefaultRamp},
		{name: "empty ramp", path: small, ramp: Ramp("")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := MapFile(tc.path, 2, 2, tc.ramp)
			if !errors.Is(err, errs.ErrDecode) {
				t.Errorf("got %v, want decode error", err)
			}
		})
	}
}
