// Package prompt asks the user for generation choices with huh forms. It only
// gathers values; the scaffold package never sees a prompt.
package prompt
