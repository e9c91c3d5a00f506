// Package ui presents refresh results on a line-oriented terminal.
//
// The [Presenter] is the single consumer of the resolver's result channel. Every result is gated on one line
// of input, so the user reads suggestions at their own pace while the remaining videos keep resolving in the
// background:
//  1. A transient "waiting" indicator is shown until the next result completes
//  2. The user is prompted to press Enter
//  3. The result is rendered with [formatter.FormatResult]
//
// Transient indicators and cursor movement are only emitted when the output is a terminal ([IsTerminal]).
package ui
