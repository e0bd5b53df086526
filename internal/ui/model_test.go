package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Logical-Byte/endfield-essence-recognizer/internal/backend"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/locale"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/polling"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/prefs"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/staticdata"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/update"
)

type idleStatus struct{}

func (idleStatus) FetchScanningStatus(context.Context) (backend.ScanningStatus, error) {
	return backend.ScanningStatus{}, nil
}

type fixedVersions struct{}

func (fixedVersions) FetchVersion(context.Context) (string, error) { return "1.0.0", nil }

func (fixedVersions) FetchLatestRelease(context.Context, string) (backend.ReleaseInfo, error) {
	return backend.ReleaseInfo{LatestVersion: "1.0.0"}, nil
}

func newTestModel(t *testing.T) (Model, prefs.Store) {
	t.Helper()
	ctx := context.Background()
	store := prefs.NewMemoryStore()
	poller, err := polling.New(ctx, polling.Options{Fetcher: idleStatus{}, Prefs: store})
	if err != nil {
		t.Fatalf("polling.New returned error: %v", err)
	}
	t.Cleanup(poller.Close)
	return New(Options{
		Context: ctx,
		Polling: poller,
		Static:  staticdata.New(staticFetcher{}),
		Updates: update.NewChecker(fixedVersions{}, ""),
		Locale:  locale.NewStore(ctx, store, "", nil),
	}), store
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_TogglePollingPersists(t *testing.T) {
	m, store := newTestModel(t)

	_, cmd := m.Update(runeKey('p'))
	if cmd == nil {
		t.Fatalf("toggle key returned no command")
	}
	msg, ok := cmd().(pollingToggledMsg)
	if !ok || !msg.enabled || msg.err != nil {
		t.Fatalf("toggle msg = %#v, want enabled without error", msg)
	}
	next, _ := m.Update(msg)
	if !next.(Model).enabled {
		t.Fatalf("model not enabled after toggle")
	}
	if v, _, _ := store.Get(context.Background(), prefs.KeyPollingEnabled); v != "true" {
		t.Fatalf("persisted flag = %q, want true", v)
	}
}

func TestModel_CycleLanguage(t *testing.T) {
	m, store := newTestModel(t)

	_, cmd := m.Update(runeKey('l'))
	if cmd == nil {
		t.Fatalf("language key returned no command")
	}
	if msg := cmd(); msg != nil {
		t.Fatalf("language cmd returned %#v, want nil", msg)
	}
	if v, _, _ := store.Get(context.Background(), prefs.KeyLanguage); v != string(locale.TC) {
		t.Fatalf("persisted language = %q, want TC", v)
	}
}

func TestModel_ReloadLoadsStaticData(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(runeKey('r'))
	msg, ok := cmd().(loadDoneMsg)
	if !ok || msg.err != nil {
		t.Fatalf("reload msg = %#v, want success", msg)
	}
	if !m.static.Loaded() {
		t.Fatalf("static data not loaded after reload")
	}
}

func TestModel_WatchMessagesUpdateState(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(busyMsg{busy: true})
	if !next.(Model).busy {
		t.Fatalf("busy not applied")
	}
	if cmd == nil {
		t.Fatalf("busyMsg did not re-arm the watch")
	}

	next, _ = next.(Model).Update(resultMsg{result: update.Result{Outcome: update.OutcomeFailed, Message: "x"}})
	if next.(Model).result.Outcome != update.OutcomeFailed {
		t.Fatalf("result not applied")
	}

	next, _ = next.(Model).Update(problemsMsg{"WARN line"})
	if got := next.(Model).problems; len(got) != 1 {
		t.Fatalf("problems = %v, want one line", got)
	}
}

func TestModel_QuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatalf("quit key returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("quit key did not quit")
	}
}
