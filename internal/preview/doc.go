// Package preview serves a generated site locally for checking in a browser
// or, through the printed QR code, on a phone on the same network.
package preview
