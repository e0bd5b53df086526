package ui

import (
	"fmt"
	"strings"

	"github.com/Logical-Byte/endfield-essence-recognizer/internal/format"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/locale"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/staticdata"
	"github.com/Logical-Byte/endfield-essence-recognizer/internal/update"
)

// screen is everything View needs, gathered so rendering stays pure.
type screen struct {
	styles   Styles
	language locale.Code
	enabled  bool
	busy     bool
	subs     int
	data     *staticdata.Dataset
	result   update.Result
	spinner  string
	problems []string
	err      error
	help     string
}

func renderScreen(s screen) string {
	var b strings.Builder
	b.WriteString(s.styles.Header.Render("Essence Recognizer  " + s.language.Label()))
	b.WriteString("\n\n")
	b.WriteString(renderPolling(s.styles, s.enabled, s.busy, s.subs))
	b.WriteString("\n")
	b.WriteString(renderUpdate(s.styles, s.result, s.spinner))
	b.WriteString("\n\n")
	b.WriteString(renderWeapons(s.styles, s.data))
	if len(s.problems) > 0 {
		b.WriteString("\n\n")
		b.WriteString(renderProblems(s.styles, s.problems))
	}
	if s.err != nil {
		b.WriteString("\n")
		b.WriteString(s.styles.DangerText.Render("error: " + s.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(s.styles.Footer.Render(s.help + "  " + s.styles.MutedText.Render(s.styles.Name)))
	return b.String()
}

func renderPolling(st Styles, enabled, busy bool, subs int) string {
	if !enabled {
		return st.MutedText.Render(fmt.Sprintf("Polling off (%d subscribers)", subs))
	}
	scanner := st.MutedText.Render("idle")
	if busy {
		scanner = st.SuccessText.Render("scanning")
	}
	return fmt.Sprintf("Polling on (%d subscribers)  scanner: %s", subs, scanner)
}

func renderUpdate(st Styles, r update.Result, spin string) string {
	badge := st.OutcomeStyle(r.Outcome).Render(r.Outcome.String())
	switch r.Outcome {
	case update.OutcomeIdle:
		return st.MutedText.Render("Update check not run")
	case update.OutcomePending:
		return badge + " " + spin + " checking for updates"
	case update.OutcomeUpdateAvailable:
		return fmt.Sprintf("%s %s  %s", badge, st.Text.Render(r.CurrentVersion+" -> "+r.LatestVersion), st.AccentText.Render(r.DownloadURL))
	case update.OutcomeLatest, update.OutcomeSilentLatest:
		return fmt.Sprintf("%s %s", badge, r.CurrentVersion)
	case update.OutcomeFailed:
		return badge + " " + st.DangerText.Render(r.Message)
	default:
		return badge
	}
}

func renderWeapons(st Styles, d *staticdata.Dataset) string {
	types := d.WeaponTypes()
	if len(types) == 0 {
		if d.Loaded() {
			return st.MutedText.Render("No weapon types")
		}
		return st.MutedText.Render("Static data not loaded")
	}

	var b strings.Builder
	if !d.Loaded() {
		b.WriteString(st.WarningText.Render("(stale)"))
		b.WriteString("\n")
	}
	for i, t := range types {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(st.AccentText.Render(t.Name))
		for _, w := range d.WeaponsOfType(t.ID) {
			stat := d.StatsForWeapon(w.ID)
			b.WriteString("\n  ")
			b.WriteString(format.TierStyle(d, w.ID).Render(format.WeaponName(d, w.ID)))
			if tags := statTags(d, stat); tags != "" {
				b.WriteString(st.MutedText.Render("  " + tags))
			}
		}
	}
	return b.String()
}

func statTags(l format.Lookup, stat staticdata.EssenceStat) string {
	var tags []string
	for _, id := range []string{stat.Attribute, stat.Secondary, stat.Skill} {
		if id != "" {
			tags = append(tags, format.GemTagName(l, id))
		}
	}
	return strings.Join(tags, " / ")
}

func renderProblems(st Styles, lines []string) string {
	var b strings.Builder
	b.WriteString(st.WarningText.Render("Recent problems"))
	for _, line := range lines {
		b.WriteString("\n  ")
		b.WriteString(st.MutedText.Render(line))
	}
	return b.String()
}
