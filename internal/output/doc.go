// Package output provides terminal output utilities: the global leveled
// logger, lipgloss styles, tables and a spinner for long-running steps.
package output
