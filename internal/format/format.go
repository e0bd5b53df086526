// Package format turns reference ids into display values.
//
// Every helper degrades gracefully: an unknown id renders as itself, and an
// unknown rarity has no color.
package format

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Logical-Byte/endfield-essence-recognizer/internal/backend"
)

// Lookup is the read side of the static data cache. Both *staticdata.Cache
// and *staticdata.Dataset satisfy it.
type Lookup interface {
	Weapon(id string) (backend.Weapon, bool)
	Essence(id string) (backend.Essence, bool)
	RarityColor(rarity int) (string, bool)
}

var white = colorful.Color{R: 1, G: 1, B: 1}

// WeaponName returns the weapon's name, or id when unknown.
func WeaponName(l Lookup, id string) string {
	if w, ok := l.Weapon(id); ok {
		return w.Name
	}
	return id
}

// WeaponIconURL returns the weapon's icon, or "" when unknown.
func WeaponIconURL(l Lookup, id string) string {
	if w, ok := l.Weapon(id); ok {
		return w.IconURL
	}
	return ""
}

// EssenceName returns the essence's name, or id when unknown.
func EssenceName(l Lookup, id string) string {
	if e, ok := l.Essence(id); ok {
		return e.Name
	}
	return id
}

// GemTagName returns the short tag shown on an essence, or id when unknown.
func GemTagName(l Lookup, id string) string {
	if e, ok := l.Essence(id); ok && e.TagName != "" {
		return e.TagName
	}
	return id
}

// ItemName resolves id as a weapon, then as an essence, then gives up and
// returns id.
func ItemName(l Lookup, id string) string {
	if w, ok := l.Weapon(id); ok {
		return w.Name
	}
	if e, ok := l.Essence(id); ok {
		return e.Name
	}
	return id
}

// ItemIconURL returns the icon for a weapon id. Essences have none.
func ItemIconURL(l Lookup, id string) (string, bool) {
	w, ok := l.Weapon(id)
	if !ok {
		return "", false
	}
	return w.IconURL, true
}

// ItemRarity returns the rarity of a weapon id.
func ItemRarity(l Lookup, id string) (int, bool) {
	w, ok := l.Weapon(id)
	if !ok {
		return 0, false
	}
	return w.Rarity, true
}

// TierColor returns the color of a rarity tier, white when the tier is
// unknown or its color does not parse.
func TierColor(l Lookup, rarity int) colorful.Color {
	hex, ok := l.RarityColor(rarity)
	if !ok {
		return white
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return white
	}
	return c
}

// ItemTierColor returns the tier color of an item. ok is false when the item
// or its tier color is unknown, in which case nothing should be tinted.
func ItemTierColor(l Lookup, id string) (colorful.Color, bool) {
	rarity, ok := ItemRarity(l, id)
	if !ok {
		return colorful.Color{}, false
	}
	hex, ok := l.RarityColor(rarity)
	if !ok {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// TierStyle renders text in the item's tier color. Unknown items get a plain
// style.
func TierStyle(l Lookup, id string) lipgloss.Style {
	c, ok := ItemTierColor(l, id)
	if !ok {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
}
