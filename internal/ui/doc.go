// Package ui is a small Bubble Tea front end that hosts the client layer.
//
// # Lifecycle
//
// Run attaches to the polling controller before the program starts and
// detaches when it exits, the way a mounted view would. On start the model
// loads static data and runs a silent update check.
//
// # State Flow
//
// The model never polls the components. Each observable (scanner busy flag,
// static dataset, update result, language) is read through a command that
// blocks on the value's change channel and turns the new value into a
// message. Handling the message re-arms the watch:
//
//	busyMsg ──> m.busy = v ──> watchBusy(next)
//
// # Keys
//
//   - p: toggle polling (persisted)
//   - u: check for updates and report even when up to date
//   - r: invalidate and reload static data
//   - l: cycle the display language
//   - h/?: toggle full help
//   - q, ctrl+c: quit
//
// # Rendering
//
// View gathers a screen value and hands it to renderScreen, so every render
// helper is a pure function of its inputs and can be tested without a
// terminal. Weapon names are tinted with their rarity color via the format
// package.
package ui
