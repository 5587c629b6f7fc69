// Package ui provides the lipgloss styles used by the CLI output:
// a shared palette for titles, status lines and help text, plus the
// tier badge colors matching the board.
package ui
