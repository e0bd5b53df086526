package backend

import (
	"encoding/json"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ScanningStatus mirrors /api/scanning_status.
type ScanningStatus struct {
	IsRunning bool `json:"is_running"`
}

// UnmarshalJSON rejects payloads without an is_running flag.
func (s *ScanningStatus) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data, "scanning status")
	if err != nil {
		return err
	}
	running, err := obj.requiredBool("scanning status", "is_running", "isRunning")
	if err != nil {
		return err
	}
	s.IsRunning = running
	return nil
}

// ReleaseInfo mirrors the published version.json descriptor.
type ReleaseInfo struct {
	LatestVersion string `json:"latestVersion"`
	DownloadURL   string `json:"downloadUrl"`
}

// UnmarshalJSON tolerates a missing latestVersion; the update checker turns
// that into a failed outcome with a readable reason.
func (r *ReleaseInfo) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data, "release info")
	if err != nil {
		return err
	}
	if r.LatestVersion, err = obj.optionalString("release info", "latestVersion", "latest_version"); err != nil {
		return err
	}
	if r.DownloadURL, err = obj.optionalString("release info", "downloadUrl", "download_url"); err != nil {
		return err
	}
	r.LatestVersion = strings.TrimSpace(r.LatestVersion)
	return nil
}

// Weapon describes a weapon and the essence stats it rolls.
type Weapon struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	IconURL            string `json:"icon_url"`
	Rarity             int    `json:"rarity"`
	AttributeEssenceID string `json:"attribute_essence_id,omitempty"`
	SecondaryEssenceID string `json:"secondary_essence_id,omitempty"`
	SkillEssenceID     string `json:"skill_essence_id,omitempty"`
}

// UnmarshalJSON validates the weapon shape.
func (w *Weapon) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data, "weapon")
	if err != nil {
		return err
	}
	var out Weapon
	if out.ID, err = obj.requiredString("weapon", "id"); err != nil {
		return err
	}
	if out.ID == "" {
		return shapeErrorf("weapon: empty id")
	}
	what := "weapon " + out.ID
	if out.Name, err = obj.requiredString(what, "name"); err != nil {
		return err
	}
	if out.IconURL, err = obj.optionalString(what, "icon_url", "iconUrl"); err != nil {
		return err
	}
	if out.Rarity, err = obj.requiredInt(what, "rarity"); err != nil {
		return err
	}
	if out.AttributeEssenceID, err = obj.optionalString(what, "attribute_essence_id", "attributeEssenceId"); err != nil {
		return err
	}
	if out.SecondaryEssenceID, err = obj.optionalString(what, "secondary_essence_id", "secondaryEssenceId"); err != nil {
		return err
	}
	if out.SkillEssenceID, err = obj.optionalString(what, "skill_essence_id", "skillEssenceId"); err != nil {
		return err
	}
	*w = out
	return nil
}

// WeaponType is a weapon category (wiki group).
type WeaponType struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	IconURL   string   `json:"icon_url"`
	SortOrder int      `json:"sort_order"`
	WeaponIDs []string `json:"weapon_ids"`
}

// UnmarshalJSON validates the weapon type shape.
func (t *WeaponType) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data, "weapon type")
	if err != nil {
		return err
	}
	var out WeaponType
	if out.ID, err = obj.requiredString("weapon type", "id"); err != nil {
		return err
	}
	if out.ID == "" {
		return shapeErrorf("weapon type: empty id")
	}
	what := "weapon type " + out.ID
	if out.Name, err = obj.requiredString(what, "name"); err != nil {
		return err
	}
	if out.IconURL, err = obj.optionalString(what, "icon_url", "iconUrl", "icon"); err != nil {
		return err
	}
	if out.SortOrder, err = obj.optionalInt(what, "sort_order", "sortOrder"); err != nil {
		return err
	}
	if out.WeaponIDs, err = obj.optionalStrings(what, "weapon_ids", "weaponIds"); err != nil {
		return err
	}
	*t = out
	return nil
}

// EssenceType classifies an essence stat.
type EssenceType string

const (
	EssenceAttribute EssenceType = "ATTRIBUTE"
	EssenceSecondary EssenceType = "SECONDARY"
	EssenceSkill     EssenceType = "SKILL"
)

// Valid reports whether t is one of the known essence types.
func (t EssenceType) Valid() bool {
	switch t {
	case EssenceAttribute, EssenceSecondary, EssenceSkill:
		return true
	}
	return false
}

// Essence is a named stat tag a weapon can roll.
type Essence struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	TagName string      `json:"tag_name"`
	Type    EssenceType `json:"type"`
}

// UnmarshalJSON validates the essence shape, including the type enum.
func (e *Essence) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data, "essence")
	if err != nil {
		return err
	}
	var out Essence
	if out.ID, err = obj.requiredString("essence", "id"); err != nil {
		return err
	}
	if out.ID == "" {
		return shapeErrorf("essence: empty id")
	}
	what := "essence " + out.ID
	if out.Name, err = obj.requiredString(what, "name"); err != nil {
		return err
	}
	if out.TagName, err = obj.optionalString(what, "tag_name", "tagName"); err != nil {
		return err
	}
	kind, err := obj.requiredString(what, "type")
	if err != nil {
		return err
	}
	out.Type = EssenceType(strings.ToUpper(strings.TrimSpace(kind)))
	if !out.Type.Valid() {
		return shapeErrorf("%s: unknown type %q", what, kind)
	}
	*e = out
	return nil
}

// WeaponListResponse mirrors /api/static/weapons.
type WeaponListResponse struct {
	Weapons []Weapon `json:"weapons"`
}

// UnmarshalJSON requires the weapons list.
func (r *WeaponListResponse) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data, "weapon list")
	if err != nil {
		return err
	}
	r.Weapons, err = requiredList[Weapon](obj, "weapon list", "weapons")
	return err
}

// WeaponTypeListResponse mirrors /api/static/weapon_types.
type WeaponTypeListResponse struct {
	WeaponTypes []WeaponType `json:"weapon_types"`
}

// UnmarshalJSON requires the weapon type list.
func (r *WeaponTypeListResponse) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data, "weapon type list")
	if err != nil {
		return err
	}
	r.WeaponTypes, err = requiredList[WeaponType](obj, "weapon type list", "weapon_types", "weaponTypes")
	return err
}

// EssenceListResponse mirrors /api/static/essences.
type EssenceListResponse struct {
	Essences []Essence `json:"essences"`
}

// UnmarshalJSON requires the essence list.
func (r *EssenceListResponse) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data, "essence list")
	if err != nil {
		return err
	}
	r.Essences, err = requiredList[Essence](obj, "essence list", "essences")
	return err
}

// RarityColorResponse mirrors /api/static/rarity_colors.
type RarityColorResponse struct {
	Colors map[int]string `json:"colors"`
}

// UnmarshalJSON requires integer rarity keys and parseable hex colors.
func (r *RarityColorResponse) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data, "rarity colors")
	if err != nil {
		return err
	}
	raw, ok := obj.lookup("colors")
	if !ok {
		return shapeErrorf("rarity colors: missing colors")
	}
	var byKey map[string]string
	if err := json.Unmarshal(raw, &byKey); err != nil {
		return shapeErrorf("rarity colors: colors is not a string map")
	}
	colors := make(map[int]string, len(byKey))
	for key, hex := range byKey {
		rarity, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return shapeErrorf("rarity colors: key %q is not an integer", key)
		}
		hex = strings.TrimSpace(hex)
		if _, err := colorful.Hex(hex); err != nil {
			return shapeErrorf("rarity colors: %q is not a hex color", hex)
		}
		colors[rarity] = hex
	}
	r.Colors = colors
	return nil
}
