// Package logging builds the zerolog loggers used across coopview.
//
// Loggers are created once per CLI invocation from a Config and travel through
// context.Context. Every command run gets a ULID trace ID which a hook stamps on
// each event, so the lines of one run can be correlated in a shared log file.
package logging
