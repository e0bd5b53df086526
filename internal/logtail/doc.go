// Package logtail reads the end of the client's own log file.
//
// The TUI owns the terminal, so the client logs to a file instead of stderr.
// Probe failures and rejected static data batches are only ever logged, and
// this package is how the UI surfaces them: Tail with IsProblem returns the
// most recent warn-or-worse lines.
//
// # Reading
//
// Read and Tail stream the whole file through a fixed-size ring buffer, so
// memory stays bounded by maxLines regardless of file size. Lines longer
// than 1 MiB fail the read.
//
// A missing file is not an error: the logger creates it lazily, and before
// the first entry there is simply nothing to show.
//
// # Levels
//
// IsProblem understands both zap encoders used by the logging package:
//
//	2026-10-17T10:00:01.000Z	WARN	polling	scanning status probe failed
//	{"level":"warn","msg":"scanning status probe failed"}
package logtail
