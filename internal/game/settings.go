package game

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownQuality is returned for a quality tier the game has no assets for.
var ErrUnknownQuality = errors.New("unknown quality tier")

// Quality selects the asset tier and render features.
type Quality string

const (
	QualitySuperLow Quality = "super-low"
	QualityLow      Quality = "low"
	QualityHigh     Quality = "high"
)

// Resolution is the window size preset.
type Resolution string

const (
	Resolution720p  Resolution = "720p"
	Resolution1080p Resolution = "1080p"
)

// Settings is read once at session start and never changes while the game
// runs.
type Settings struct {
	Audio      bool
	Resolution Resolution
	Quality    Quality
}

// DefaultSettings returns audio on, 1080p, super-low quality.
func DefaultSettings() Settings {
	return Settings{Audio: true, Resolution: Resolution1080p, Quality: QualitySuperLow}
}

// ParseSettings applies an options mapping over the defaults. Audio is on
// unless set to "off"; any resolution other than "720p" means 1080p.
func ParseSettings(opts map[string]string) (Settings, error) {
	s := DefaultSettings()
	if opts["audio"] == "off" {
		s.Audio = false
	}
	if opts["resolution"] == string(Resolution720p) {
		s.Resolution = Resolution720p
	}
	if q, ok := opts["quality"]; ok && q != "" {
		switch Quality(q) {
		case QualitySuperLow, QualityLow, QualityHigh:
			s.Quality = Quality(q)
		default:
			return Settings{}, fmt.Errorf("quality %q: %w", q, ErrUnknownQuality)
		}
	}
	return s, nil
}

// DecodeSettings parses a YAML mapping of option names to values.
func DecodeSettings(data []byte) (Settings, error) {
	opts := map[string]string{}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return ParseSettings(opts)
}

// LoadSettings reads a settings file. A missing file yields the defaults.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return DecodeSettings(data)
}

// WindowSize returns the window dimensions for the resolution preset.
func (s Settings) WindowSize() (int, int) {
	if s.Resolution == Resolution720p {
		return 1280, 720
	}
	return 1920, 1080
}

// Fog reports whether the renderer should fall back to distance fog.
func (s Settings) Fog() bool {
	return s.Quality == QualitySuperLow
}
