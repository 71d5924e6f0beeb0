package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseSettings_Defaults(t *testing.T) {
	s, err := ParseSettings(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s != DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", s)
	}
	if !s.Audio || s.Resolution != Resolution1080p || s.Quality != QualitySuperLow {
		t.Fatalf("unexpected defaults %+v", s)
	}
}

func TestParseSettings_Overrides(t *testing.T) {
	s, err := ParseSettings(map[string]string{"audio": "off", "resolution": "720p", "quality": "high"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Audio || s.Resolution != Resolution720p || s.Quality != QualityHigh {
		t.Fatalf("unexpected settings %+v", s)
	}
	if w, h := s.WindowSize(); w != 1280 || h != 720 {
		t.Fatalf("expected 1280x720, got %dx%d", w, h)
	}
	if s.Fog() {
		t.Fatal("expected no fog at high quality")
	}
}

func TestParseSettings_LenientAudioAndResolution(t *testing.T) {
	s, err := ParseSettings(map[string]string{"audio": "maybe", "resolution": "4k"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !s.Audio || s.Resolution != Resolution1080p {
		t.Fatalf("expected unknown values to keep defaults, got %+v", s)
	}
}

func TestParseSettings_UnknownQuality(t *testing.T) {
	_, err := ParseSettings(map[string]string{"quality": "ultra"})
	if !errors.Is(err, ErrUnknownQuality) {
		t.Fatalf("expected ErrUnknownQuality, got %v", err)
	}
}

func TestDecodeSettings_YAML(t *testing.T) {
	s, err := DecodeSettings([]byte("audio: off\nresolution: 720p\nquality: low\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Audio || s.Quality != QualityLow {
		t.Fatalf("unexpected settings %+v", s)
	}
	if _, err := DecodeSettings([]byte("audio: [")); err == nil {
		t.Fatal("expected malformed YAML to fail")
	}
}

func TestLoadSettings_MissingFileYieldsDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s != DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", s)
	}
}

func TestLoadSettings_ReadsFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(p, []byte("quality: high\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := LoadSettings(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Quality != QualityHigh {
		t.Fatalf("expected high quality, got %s", s.Quality)
	}
}
