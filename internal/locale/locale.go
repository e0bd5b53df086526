// Package locale stores the user's display language.
package locale

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/Logical-Byte/endfield-essence-recognizer/internal/prefs"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/state"
)

// Code is a game language code as used by the backend's translation tables.
type Code string

const (
	CN Code = "CN"
	TC Code = "TC"
	DE Code = "DE"
	EN Code = "EN"
	MX Code = "MX"
	FR Code = "FR"
	BR Code = "BR"
	ID Code = "ID"
	IT Code = "IT"
	JP Code = "JP"
	KR Code = "KR"
	RU Code = "RU"
	TH Code = "TH"
	VN Code = "VN"
)

// Default is used when nothing valid is stored.
const Default = CN

type entry struct {
	code  Code
	label string
	tag   language.Tag
}

var table = []entry{
	{CN, "简体中文", language.SimplifiedChinese},
	{TC, "繁體中文", language.TraditionalChinese},
	{DE, "Deutsch", language.German},
	{EN, "English", language.English},
	{MX, "Español", language.LatinAmericanSpanish},
	{FR, "Français", language.French},
	{BR, "Português (Brasil)", language.BrazilianPortuguese},
	{ID, "Bahasa Indonesia", language.Indonesian},
	{IT, "Italiano", language.Italian},
	{JP, "日本語", language.Japanese},
	{KR, "한국어", language.Korean},
	{RU, "Русский", language.Russian},
	{TH, "ภาษาไทย", language.Thai},
	{VN, "Tiếng Việt", language.Vietnamese},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(table))
	for i, e := range table {
		tags[i] = e.tag
	}
	return language.NewMatcher(tags)
}()

// Supported lists every code in display order.
func Supported() []Code {
	out := make([]Code, len(table))
	for i, e := range table {
		out[i] = e.code
	}
	return out
}

func (c Code) lookup() (entry, bool) {
	for _, e := range table {
		if e.code == c {
			return e, true
		}
	}
	return entry{}, false
}

// Valid reports whether c is a supported code.
func (c Code) Valid() bool {
	_, ok := c.lookup()
	return ok
}

// Label returns the language's name in that language.
func (c Code) Label() string {
	if e, ok := c.lookup(); ok {
		return e.label
	}
	return string(c)
}

// Tag returns the BCP 47 tag for c, or language.Und for unknown codes.
func (c Code) Tag() language.Tag {
	if e, ok := c.lookup(); ok {
		return e.tag
	}
	return language.Und
}

// Next returns the code after c in display order, wrapping around.
func (c Code) Next() Code {
	for i, e := range table {
		if e.code == c {
			return table[(i+1)%len(table)].code
		}
	}
	return Default
}

// ParseCode accepts a code in any case ("en", "EN"), a BCP 47 tag
// ("en-US", "zh-Hant-TW") or a POSIX locale ("ja_JP.UTF-8") and returns the
// closest supported code.
func ParseCode(s string) (Code, error) {
	trimmed := strings.TrimSpace(s)
	if i := strings.IndexAny(trimmed, ".@"); i >= 0 {
		trimmed = trimmed[:i]
	}
	if trimmed == "" {
		return "", fmt.Errorf("empty language")
	}
	if c := Code(strings.ToUpper(trimmed)); c.Valid() {
		return c, nil
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse language %q: %w", s, err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("unsupported language %q", s)
	}
	return table[idx].code, nil
}

// Store holds the selected language and persists every change.
type Store struct {
	prefs  prefs.Store
	logger *zap.Logger
	lang   *state.Value[Code]

	setMu sync.Mutex // serializes Set so the stored code matches Current
}

// NewStore restores the stored language. When nothing valid is stored it
// uses fallback, or Default if fallback is not supported either.
func NewStore(ctx context.Context, p prefs.Store, fallback Code, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if p == nil {
		p = prefs.NewMemoryStore()
	}
	current := Default
	if fallback.Valid() {
		current = fallback
	}
	raw, ok, err := p.Get(ctx, prefs.KeyLanguage)
	switch {
	case err != nil:
		logger.Warn("read language", zap.Error(err))
	case ok:
		if c := Code(raw); c.Valid() {
			current = c
		} else {
			logger.Warn("ignore unknown stored language", zap.String("value", raw))
		}
	}
	return &Store{prefs: p, logger: logger, lang: state.NewValue(current)}
}

// Current returns the selected language.
func (s *Store) Current() Code {
	return s.lang.Get()
}

// Language lets observers follow language changes.
func (s *Store) Language() state.Reader[Code] {
	return s.lang
}

// Set selects c and persists it. The selection stays in effect even when
// persisting fails.
func (s *Store) Set(ctx context.Context, c Code) error {
	if !c.Valid() {
		return fmt.Errorf("unsupported language %q", c)
	}
	s.setMu.Lock()
	defer s.setMu.Unlock()

	s.lang.Set(c)
	if err := s.prefs.Set(ctx, prefs.KeyLanguage, string(c)); err != nil {
		s.logger.Warn("persist language", zap.String("code", string(c)), zap.Error(err))
		return fmt.Errorf("persist language: %w", err)
	}
	return nil
}
