// Package cli defines the Cobra command tree for the boil CLI. Each file
// registers one command (new, generate:page, preview, deploy, etc.) with the
// root command. Commands gather choices from flags, presets or prompts and
// delegate the work to the scaffold, userdata, undo, preview and deploy
// packages.
package cli
