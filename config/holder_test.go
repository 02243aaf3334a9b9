package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func newTestHolder(t *testing.T) (*Holder, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "terramod.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	h, err := NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("new holder: %v", err)
	}
	return h, path
}

func TestHolder_GetAndReload(t *testing.T) {
	h, path := newTestHolder(t)
	defer h.Stop()

	if got := h.Get().Server.Port; got != 8080 {
		t.Fatalf("initial port = %d", got)
	}

	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	if err := h.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := h.Get().Server.Port; got != 9090 {
		t.Errorf("port after reload = %d, want 9090", got)
	}
}

func TestHolder_FailedReloadKeepsOldConfig(t *testing.T) {
	h, path := newTestHolder(t)
	defer h.Stop()

	if err := os.WriteFile(path, []byte("server:\n  port: 99999\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	if err := h.Reload(); err == nil {
		t.Fatal("expected reload error")
	}
	if got := h.Get().Server.Port; got != 8080 {
		t.Errorf("port after failed reload = %d, want unchanged 8080", got)
	}
}

func TestHolder_OnChange(t *testing.T) {
	h, path := newTestHolder(t)
	defer h.Stop()

	var seen []int
	h.OnChange(func(cfg *Config) {
		seen = append(seen, cfg.Server.Port)
	})

	if err := os.WriteFile(path, []byte("server:\n  port: 7070\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}
	if err := h.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if len(seen) != 1 || seen[0] != 7070 {
		t.Errorf("listener calls = %v, want [7070]", seen)
	}
}

func TestHolder_MissingFile(t *testing.T) {
	if _, err := NewHolder(filepath.Join(t.TempDir(), "nope.yaml"), zerolog.Nop()); err == nil {
		t.Error("expected error")
	}
}
