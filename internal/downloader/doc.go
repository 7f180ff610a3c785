// Package downloader wraps the external download command.
//
// The contract with the tool is deliberately thin: it is invoked with one
// positional argument (the track URL), exit code zero means success, and
// anything on stderr becomes the diagnostic shown to the user. Availability
// is resolved once up front so the UI can report a missing tool before the
// first download attempt.
package downloader
