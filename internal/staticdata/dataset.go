package staticdata

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/Logical-Byte/endfield-essence-recognizer/internal/backend"
)

// Kind names one of the four reference collections.
type Kind int

const (
	KindWeapon Kind = iota
	KindWeaponType
	KindEssence
	KindRarityColor
)

func (k Kind) String() string {
	switch k {
	case KindWeapon:
		return "weapon"
	case KindWeaponType:
		return "weapon_type"
	case KindEssence:
		return "essence"
	case KindRarityColor:
		return "rarity_color"
	default:
		return "unknown"
	}
}

// EssenceStat names the essence a weapon wants in each slot. Empty means none.
type EssenceStat struct {
	Attribute string
	Secondary string
	Skill     string
}

// Dataset is one immutable generation of reference data. Methods are safe on a
// nil Dataset and behave as if it were empty.
type Dataset struct {
	weapons      map[string]backend.Weapon
	weaponOrder  []string
	weaponTypes  []backend.WeaponType
	essences     map[string]backend.Essence
	essenceOrder []string
	rarityColors map[int]string
	loaded       bool
}

func newDataset(weapons []backend.Weapon, types []backend.WeaponType, essences []backend.Essence, colors map[int]string) *Dataset {
	d := &Dataset{
		weapons:      make(map[string]backend.Weapon, len(weapons)),
		weaponOrder:  make([]string, 0, len(weapons)),
		weaponTypes:  slices.Clone(types),
		essences:     make(map[string]backend.Essence, len(essences)),
		essenceOrder: make([]string, 0, len(essences)),
		rarityColors: make(map[int]string, len(colors)),
		loaded:       true,
	}
	for _, w := range weapons {
		if _, dup := d.weapons[w.ID]; !dup {
			d.weaponOrder = append(d.weaponOrder, w.ID)
		}
		d.weapons[w.ID] = w
	}
	for _, e := range essences {
		if _, dup := d.essences[e.ID]; !dup {
			d.essenceOrder = append(d.essenceOrder, e.ID)
		}
		d.essences[e.ID] = e
	}
	for rarity, hex := range colors {
		d.rarityColors[rarity] = hex
	}
	return d
}

// unloaded returns a copy sharing d's collections with loaded cleared.
func (d *Dataset) unloaded() *Dataset {
	if d == nil {
		return &Dataset{}
	}
	next := *d
	next.loaded = false
	return &next
}

// Loaded reports whether the dataset came from a complete, current batch.
func (d *Dataset) Loaded() bool {
	return d != nil && d.loaded
}

func (d *Dataset) Weapon(id string) (backend.Weapon, bool) {
	if d == nil {
		return backend.Weapon{}, false
	}
	w, ok := d.weapons[id]
	return w, ok
}

func (d *Dataset) WeaponType(id string) (backend.WeaponType, bool) {
	if d == nil {
		return backend.WeaponType{}, false
	}
	for _, t := range d.weaponTypes {
		if t.ID == id {
			return cloneWeaponType(t), true
		}
	}
	return backend.WeaponType{}, false
}

func (d *Dataset) Essence(id string) (backend.Essence, bool) {
	if d == nil {
		return backend.Essence{}, false
	}
	e, ok := d.essences[id]
	return e, ok
}

// RarityColor returns the "#RRGGBB" color for a rarity tier.
func (d *Dataset) RarityColor(rarity int) (string, bool) {
	if d == nil {
		return "", false
	}
	hex, ok := d.rarityColors[rarity]
	return hex, ok
}

// Lookup finds id in the collection named by kind. Rarity colors are keyed by
// the decimal rarity.
func (d *Dataset) Lookup(kind Kind, id string) (any, bool) {
	switch kind {
	case KindWeapon:
		return okOrNil(d.Weapon(id))
	case KindWeaponType:
		return okOrNil(d.WeaponType(id))
	case KindEssence:
		return okOrNil(d.Essence(id))
	case KindRarityColor:
		rarity, err := strconv.Atoi(id)
		if err != nil {
			return nil, false
		}
		return okOrNil(d.RarityColor(rarity))
	default:
		return nil, false
	}
}

func okOrNil[T any](v T, ok bool) (any, bool) {
	if !ok {
		return nil, false
	}
	return v, true
}

// Weapons lists every weapon in payload order.
func (d *Dataset) Weapons() []backend.Weapon {
	if d == nil {
		return nil
	}
	out := make([]backend.Weapon, 0, len(d.weaponOrder))
	for _, id := range d.weaponOrder {
		out = append(out, d.weapons[id])
	}
	return out
}

// WeaponTypes lists weapon types by ascending sort order. Ties keep payload
// order.
func (d *Dataset) WeaponTypes() []backend.WeaponType {
	if d == nil {
		return nil
	}
	out := make([]backend.WeaponType, 0, len(d.weaponTypes))
	for _, t := range d.weaponTypes {
		out = append(out, cloneWeaponType(t))
	}
	slices.SortStableFunc(out, func(a, b backend.WeaponType) int {
		return cmp.Compare(a.SortOrder, b.SortOrder)
	})
	return out
}

// WeaponsOfType resolves a weapon type's members. Unknown member ids are
// skipped.
func (d *Dataset) WeaponsOfType(typeID string) []backend.Weapon {
	t, ok := d.WeaponType(typeID)
	if !ok {
		return nil
	}
	out := make([]backend.Weapon, 0, len(t.WeaponIDs))
	for _, id := range t.WeaponIDs {
		if w, ok := d.weapons[id]; ok {
			out = append(out, w)
		}
	}
	return out
}

// EssenceIDs lists the ids of essences of one type in payload order.
func (d *Dataset) EssenceIDs(t backend.EssenceType) []string {
	var ids []string
	for _, e := range d.essencesOf(t) {
		ids = append(ids, e.ID)
	}
	return ids
}

func (d *Dataset) AttributeStats() []backend.Essence {
	return d.essencesOf(backend.EssenceAttribute)
}

func (d *Dataset) SecondaryStats() []backend.Essence {
	return d.essencesOf(backend.EssenceSecondary)
}

func (d *Dataset) SkillStats() []backend.Essence {
	return d.essencesOf(backend.EssenceSkill)
}

func (d *Dataset) essencesOf(t backend.EssenceType) []backend.Essence {
	if d == nil {
		return nil
	}
	var out []backend.Essence
	for _, id := range d.essenceOrder {
		if e := d.essences[id]; e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// StatsForWeapon returns the essences a weapon wants. An unknown weapon gets
// an empty stat.
func (d *Dataset) StatsForWeapon(id string) EssenceStat {
	w, ok := d.Weapon(id)
	if !ok {
		return EssenceStat{}
	}
	return EssenceStat{
		Attribute: w.AttributeEssenceID,
		Secondary: w.SecondaryEssenceID,
		Skill:     w.SkillEssenceID,
	}
}

func cloneWeaponType(t backend.WeaponType) backend.WeaponType {
	t.WeaponIDs = slices.Clone(t.WeaponIDs)
	return t
}
