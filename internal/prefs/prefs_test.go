package prefs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestOpenFile_MissingFileStartsEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := OpenFile("")
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	if !strings.HasPrefix(s.Path(), home) {
		t.Fatalf("Path = %q, want it under HOME %q", s.Path(), home)
	}
	if _, ok, err := s.Get(context.Background(), KeyLanguage); err != nil || ok {
		t.Fatalf("Get = ok=%v err=%v, want missing", ok, err)
	}
}

func TestOpenFile_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "eer")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := "app-language = \"EN\"\nscanningStatusPollingEnabled = \"true\"\nnumber = 3\n"
	if err := os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := OpenFile("")
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	ctx := context.Background()
	if v, ok, _ := s.Get(ctx, KeyLanguage); !ok || v != "EN" {
		t.Fatalf("language = %q (ok=%v), want EN", v, ok)
	}
	if v, ok, _ := s.Get(ctx, KeyPollingEnabled); !ok || v != "true" {
		t.Fatalf("polling = %q (ok=%v), want true", v, ok)
	}
	if _, ok, _ := s.Get(ctx, "number"); ok {
		t.Fatalf("non-string value should be ignored")
	}
}

func TestFileStore_SetPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "prefs.toml")
	ctx := context.Background()

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	if err := s.Set(ctx, KeyPollingEnabled, "false"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Set(ctx, KeyLanguage, "JP"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	if v, ok, _ := reopened.Get(ctx, KeyLanguage); !ok || v != "JP" {
		t.Fatalf("language = %q (ok=%v), want JP", v, ok)
	}
	if v, ok, _ := reopened.Get(ctx, KeyPollingEnabled); !ok || v != "false" {
		t.Fatalf("polling = %q (ok=%v), want false", v, ok)
	}
}

func TestOpenFile_InvalidTOMLStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	if _, ok, _ := s.Get(context.Background(), KeyLanguage); ok {
		t.Fatalf("expected empty store after invalid file")
	}
}

func TestFileStore_SetFailureKeepsPreviousValue(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// The parent "directory" is a regular file, so MkdirAll fails.
	s, err := OpenFile(filepath.Join(blocker, "prefs.toml"))
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	if err := s.Set(context.Background(), KeyLanguage, "EN"); err == nil {
		t.Fatalf("Set returned nil error, want error")
	}
	if _, ok, _ := s.Get(context.Background(), KeyLanguage); ok {
		t.Fatalf("failed Set should not leave the value behind")
	}
}

func TestMemoryStore_GetSet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatalf("Get on empty store ok = true")
	}
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if v, ok, _ := s.Get(ctx, "k"); !ok || v != "v" {
		t.Fatalf("Get = %q (ok=%v), want v", v, ok)
	}
}

func TestOpen_SelectsBackend(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Options{Backend: "memory"})
	if err != nil {
		t.Fatalf("Open(memory) returned error: %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Fatalf("Open(memory) = %T, want *MemoryStore", s)
	}

	s, err = Open(ctx, Options{Backend: "FILE", Path: filepath.Join(t.TempDir(), "p.toml")})
	if err != nil {
		t.Fatalf("Open(file) returned error: %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Fatalf("Open(file) = %T, want *FileStore", s)
	}

	if _, err := Open(ctx, Options{Backend: "etcd"}); err == nil {
		t.Fatalf("Open(etcd) returned nil error, want error")
	}
}

func TestOpenRedis_RequiresAddressAndReachability(t *testing.T) {
	if _, err := OpenRedis(context.Background(), "  ", 0); err == nil {
		t.Fatalf("OpenRedis with empty address returned nil error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	t.Cleanup(cancel)
	if _, err := OpenRedis(ctx, "127.0.0.1:1", 0); err == nil {
		t.Fatalf("OpenRedis against closed port returned nil error")
	}
}
