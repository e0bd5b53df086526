// Package app is the composition root of the client.
//
// # Overview
//
// A Session holds exactly one of each component and is the only place they
// are constructed. There are no package-level singletons: hosts create a
// Session at startup, hand its components to whatever needs them, and Close
// it on exit.
//
// # Wiring
//
//	NewSession(ctx, cfg, logger)
//	       │
//	       ├─────> backend.NewClient()   HTTP client for the local API
//	       ├─────> prefs.Open()          file | memory | redis
//	       ├─────> polling.New()         restores the enabled flag
//	       ├─────> staticdata.New()      empty, unloaded
//	       ├─────> update.NewChecker()   idle
//	       └─────> locale.NewStore()     restores the language
//
// The backend client serves three roles (status, static data, versions);
// prefs backs both the polling flag and the language.
//
// # Run
//
// Run loads config, builds the zap logger, creates a Session and runs the
// terminal UI until the user quits or the context is cancelled. The -poll
// flag overrides the configured polling interval.
//
// # Shutdown
//
// Session.Close stops the polling timer, waits for in-flight probes and closes
// the preference store.
package app
