package locale

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Logical-Byte/endfield-essence-recognizer/internal/prefs"
)

func TestParseCode(t *testing.T) {
	tests := []struct {
		in      string
		want    Code
		wantErr bool
	}{
		{in: "EN", want: EN},
		{in: " jp ", want: JP},
		{in: "en-US", want: EN},
		{in: "zh-Hant-TW", want: TC},
		{in: "zh-CN", want: CN},
		{in: "pt-BR", want: BR},
		{in: "es-MX", want: MX},
		{in: "ja", want: JP},
		{in: "ko-KR", want: KR},
		{in: "ja_JP.UTF-8", want: JP},
		{in: "de_DE@euro", want: DE},
		{in: "C.UTF-8", wantErr: true},
		{in: "", wantErr: true},
		{in: "not a tag!", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseCode(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCode(%q) = %q, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCode(%q) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCodeHelpers(t *testing.T) {
	if got := len(Supported()); got != 14 {
		t.Fatalf("Supported len = %d, want 14", got)
	}
	if JP.Label() != "日本語" {
		t.Fatalf("JP.Label = %q", JP.Label())
	}
	if got := TC.Tag().String(); got != "zh-Hant" {
		t.Fatalf("TC.Tag = %q, want zh-Hant", got)
	}
	if Code("XX").Valid() {
		t.Fatalf("XX should be invalid")
	}
	if VN.Next() != CN || CN.Next() != TC {
		t.Fatalf("Next does not cycle in display order")
	}
}

func TestStore_DefaultsAndPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.toml")

	p, err := prefs.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	s := NewStore(ctx, p, "", nil)
	if s.Current() != CN {
		t.Fatalf("Current = %q, want CN", s.Current())
	}
	if err := s.Set(ctx, EN); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if s.Language().Get() != EN {
		t.Fatalf("Language = %q, want EN", s.Language().Get())
	}

	reopened, err := prefs.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	if got := NewStore(ctx, reopened, JP, nil).Current(); got != EN {
		t.Fatalf("restored language = %q, want EN", got)
	}
}

func TestStore_RejectsUnknown(t *testing.T) {
	ctx := context.Background()
	p := prefs.NewMemoryStore()
	_ = p.Set(ctx, prefs.KeyLanguage, "Klingon")

	s := NewStore(ctx, p, "", nil)
	if s.Current() != Default {
		t.Fatalf("Current = %q, want default", s.Current())
	}
	if err := s.Set(ctx, Code("XX")); err == nil {
		t.Fatalf("Set(XX) returned nil error")
	}
	if s.Current() != Default {
		t.Fatalf("rejected Set changed language to %q", s.Current())
	}
}

func TestStore_FallbackWhenNothingStored(t *testing.T) {
	ctx := context.Background()
	p := prefs.NewMemoryStore()

	if got := NewStore(ctx, p, EN, nil).Current(); got != EN {
		t.Fatalf("Current = %q, want fallback EN", got)
	}
	if got := NewStore(ctx, p, Code("XX"), nil).Current(); got != Default {
		t.Fatalf("Current = %q, want Default for unsupported fallback", got)
	}

	_ = p.Set(ctx, prefs.KeyLanguage, "KR")
	if got := NewStore(ctx, p, EN, nil).Current(); got != KR {
		t.Fatalf("Current = %q, want stored KR over fallback", got)
	}
}

// stallingPrefs holds the first Set until release is closed.
type stallingPrefs struct {
	*prefs.MemoryStore
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (p *stallingPrefs) Set(ctx context.Context, key, value string) error {
	first := false
	p.once.Do(func() { first = true })
	if first {
		close(p.entered)
		<-p.release
	}
	return p.MemoryStore.Set(ctx, key, value)
}

func TestStore_OverlappingSetsPersistLastCode(t *testing.T) {
	ctx := context.Background()
	p := &stallingPrefs{
		MemoryStore: prefs.NewMemoryStore(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	s := NewStore(ctx, p, "", nil)

	first := make(chan error, 1)
	go func() { first <- s.Set(ctx, EN) }()
	<-p.entered

	second := make(chan error, 1)
	go func() { second <- s.Set(ctx, JP) }()
	select {
	case err := <-second:
		t.Fatalf("Set(JP) returned %v while an earlier Set was still persisting", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(p.release)
	if err := <-first; err != nil {
		t.Fatalf("Set(EN) returned error: %v", err)
	}
	if err := <-second; err != nil {
		t.Fatalf("Set(JP) returned error: %v", err)
	}
	if s.Current() != JP {
		t.Fatalf("Current = %q, want JP", s.Current())
	}
	if v, _, _ := p.Get(ctx, prefs.KeyLanguage); v != "JP" {
		t.Fatalf("stored language = %q, want JP", v)
	}
}
