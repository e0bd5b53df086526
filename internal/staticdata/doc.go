// Package staticdata caches the game's reference data: weapons, weapon types,
// essences and rarity colors.
//
// The four collections are fetched together and published together. A batch
// either succeeds completely and replaces the current Dataset in one step, or
// fails and changes nothing. Readers always see one coherent Dataset; derived
// views such as WeaponsOfType and SkillStats are computed from it on every
// call.
//
// Invalidate bumps a generation counter. A Load started before the bump
// finishes with ErrSuperseded instead of publishing old data.
package staticdata
