package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/1F47E/go-termreel/pkg/errs"
)

const (
	keyVideo  = "video"
	keyWidth  = "width"
	keyHeight = "height"
	keyFPS    = "fps"
	keyVolume = "volume"
	keyPacing = "pacing"
	keyFFmpeg = "ffmpeg"
)

var requiredKeys = []string{keyVideo, keyWidth, keyHeight, keyFPS, keyVolume}

var knownKeys = map[string]bool{
	keyVideo:  true,
	keyWidth:  true,
	keyHeight: true,
	keyFPS:    true,
	keyVolume: true,
	keyPacing: true,
	keyFFmpeg: true,
}

// Load reads and validates the config file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errs.New(errs.KindConfig, "open "+path, err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		var e *errs.Error
		if errors.As(err, &e) && e.Op == "" {
			e.Op = path
		}
		return Config{}, err
	}
	return cfg, nil
}

// Parse reads whitespace separated "key: value" pairs. A glued "key:value"
// token is accepted too. Keys are lowercase and case sensitive, unknown keys
// are ignored and the last occurrence of a key wins. Every core key is required.
func Parse(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, errs.New(errs.KindConfig, "", err)
	}

	values := make(map[string]string)
	tokens := strings.Fields(string(data))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		idx := strings.IndexByte(tok, ':')
		if idx <= 0 {
			continue
		}
		key := tok[:idx]
		if !knownKeys[key] {
			continue
		}
		val := tok[idx+1:]
		if val == "" {
			if i+1 >= len(tokens) {
				return Config{}, errs.Newf(errs.KindConfig, "", "key %q has no value", key)
			}
			i++
			val = tokens[i]
		}
		values[key] = val
	}

	var missing []string
	for _, k := range requiredKeys {
		if _, ok := values[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return Config{}, errs.Newf(errs.KindConfig, "", "missing keys: %s", strings.Join(missing, ", "))
	}

	cfg := Default()
	cfg.Video = values[keyVideo]
	if cfg.Width, err = parseDim(keyWidth, values[keyWidth]); err != nil {
		return Config{}, err
	}
	if cfg.Height, err = parseDim(keyHeight, values[keyHeight]); err != nil {
		return Config{}, err
	}
	if cfg.FPS, err = strconv.ParseFloat(values[keyFPS], 64); err != nil {
		return Config{}, errs.Newf(errs.KindConfig, "", "fps: %w", err)
	}
	if cfg.Volume, err = strconv.ParseFloat(values[keyVolume], 64); err != nil {
		return Config{}, errs.Newf(errs.KindConfig, "", "volume: %w", err)
	}
	if v, ok := values[keyPacing]; ok {
		cfg.Pacing = Pacing(strings.ToLower(v))
	}
	if v, ok := values[keyFFmpeg]; ok {
		cfg.FFmpeg = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseDim(key, val string) (int, error) {
	n, err := strconv.ParseUint(val, 10, 31)
	if err != nil {
		return 0, errs.Newf(errs.KindConfig, "", "%s: %w", key, err)
	}
	return int(n), nil
}

func (c Config) Validate() error {
	var problems []string
	if c.Video == "" {
		problems = append(problems, "video is empty")
	}
	if c.Width <= 0 {
		problems = append(problems, "width must be > 0")
	}
	if c.Height <= 0 {
		problems = append(problems, "height must be > 0")
	}
	if c.FPS <= 0 {
		problems = append(problems, "fps must be > 0")
	}
	if c.Volume < 0 || c.Volume > 1 {
		problems = append(problems, "volume must be within [0, 1]")
	}
	switch c.Pacing {
	case PacingCompensated, PacingFixed:
	default:
		problems = append(problems, fmt.Sprintf("pacing must be %q or %q", PacingCompensated, PacingFixed))
	}
	if c.FFmpeg == "" {
		problems = append(problems, "ffmpeg is empty")
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return errs.Newf(errs.KindConfig, "", "%s", strings.Join(problems, "; "))
	}
	return nil
}

// Encode writes cfg in the config file format.
func (c Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s: %s\n", keyVideo, c.Video)
	fmt.Fprintf(&buf, "%s: %d\n", keyWidth, c.Width)
	fmt.Fprintf(&buf, "%s: %d\n", keyHeight, c.Height)
	fmt.Fprintf(&buf, "%s: %s\n", keyFPS, strconv.FormatFloat(c.FPS, 'g', -1, 64))
	fmt.Fprintf(&buf, "%s: %s\n", keyVolume, strconv.FormatFloat(c.Volume, 'g', -1, 64))
	_, err := w.Write(buf.Bytes())
	return err
}

// EnsureDefault writes the default config to path unless a file exists there.
func EnsureDefault(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, errs.New(errs.KindConfig, "stat "+path, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return false, errs.New(errs.KindConfig, "create "+path, err)
	}
	if err := Default().Encode(f); err != nil {
		f.Close()
		return false, errs.New(errs.KindConfig, "write "+path, err)
	}
	if err := f.Close(); err != nil {
		return false, errs.New(errs.KindConfig, "write "+path, err)
	}
	return true, nil
}
