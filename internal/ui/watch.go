package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Logical-Byte/endfield-essence-recognizer/internal/locale"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/state"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/staticdata"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/update"
)

type busyMsg struct {
	busy    bool
	changed <-chan struct{}
}

type datasetMsg struct {
	data    *staticdata.Dataset
	changed <-chan struct{}
}

type resultMsg struct {
	result  update.Result
	changed <-chan struct{}
}

type languageMsg struct {
	code    locale.Code
	changed <-chan struct{}
}

// observe reads r once after changed fires (immediately when changed is nil)
// and hands the value with the next change channel to wrap. The model
// re-issues observe with that channel, so each value costs one goroutine.
func observe[T any](ctx context.Context, r state.Reader[T], changed <-chan struct{}, wrap func(T, <-chan struct{}) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		if changed != nil {
			select {
			case <-changed:
			case <-ctx.Done():
				return nil
			}
		}
		val, next := r.Load()
		return wrap(val, next)
	}
}

func (m Model) watchBusy(changed <-chan struct{}) tea.Cmd {
	return observe(m.ctx, m.polling.Busy(), changed, func(v bool, next <-chan struct{}) tea.Msg {
		return busyMsg{busy: v, changed: next}
	})
}

func (m Model) watchDataset(changed <-chan struct{}) tea.Cmd {
	return observe(m.ctx, m.static.Data(), changed, func(v *staticdata.Dataset, next <-chan struct{}) tea.Msg {
		return datasetMsg{data: v, changed: next}
	})
}

func (m Model) watchResult(changed <-chan struct{}) tea.Cmd {
	return observe(m.ctx, m.updates.Result(), changed, func(v update.Result, next <-chan struct{}) tea.Msg {
		return resultMsg{result: v, changed: next}
	})
}

func (m Model) watchLanguage(changed <-chan struct{}) tea.Cmd {
	return observe(m.ctx, m.locale.Language(), changed, func(v locale.Code, next <-chan struct{}) tea.Msg {
		return languageMsg{code: v, changed: next}
	})
}
