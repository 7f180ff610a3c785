// Package tui renders the interactive terminal interface with Bubble Tea.
//
// The model is a thin presentation layer: it draws whatever snapshot the
// coordinator last published and forwards key presses back as coordinator
// calls. Coordinator events arrive through a single self-rescheduling
// command, so the program loop stays the only consumer of the event channel.
package tui
