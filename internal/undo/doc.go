// Package undo reverses the most recent recorded generation by deleting its
// output and dropping it from the history.
package undo
