// Package polling keeps the scanner's running status fresh while anything is
// interested in it.
//
// # Overview
//
// A Controller owns one repeating timer no matter how many views want the
// status. Views call Attach when they appear and Detach when they go away; the
// timer runs only while at least one subscriber is attached and the user has
// polling enabled:
//
//	running  <=>  subscribers > 0 && enabled
//
// The enabled flag is stored in prefs under "scanningStatusPollingEnabled" as
// "true" or "false" and restored by New. Missing or unparsable values mean
// disabled.
//
// # Probes
//
// Each probe is one GET /api/scanning_status. Starting the timer fires a probe
// right away, then one per interval. Probes are never retried early and never
// back off; a failure is logged and the next tick tries again. Busy keeps its
// previous value on failure.
//
// Probe lets a caller ask for a refresh on demand. It blocks until the result
// is applied or discarded and never returns an error.
//
// # Ordering
//
// Timer probes and manual probes can overlap. Every probe takes a sequence
// number and the timer generation when it is issued, and its result is applied
// only if:
//
//   - the generation is still current (the timer has not been stopped or
//     restarted since), and
//   - no newer probe has already been applied.
//
// Stopping the timer does not cancel a request in flight; its answer is simply
// dropped by the generation check.
//
// # Concurrency
//
// Attach, Detach and SetEnabled share one mutex, so the subscriber count and
// the start/stop decision change together and take effect in call order. None
// of them waits on the network. SetEnabled persists the flag after releasing
// the lock.
//
// # Lifecycle
//
//	c, err := polling.New(ctx, polling.Options{Fetcher: client, Prefs: store})
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	c.Attach()
//	defer c.Detach()
//
// Close stops the timer and waits for background probes. After Close the timer
// never starts again.
package polling
