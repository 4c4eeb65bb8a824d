// Package userdata persists boil's per-user state under ~/.boil (or
// $BOIL_HOME): the operation history used by undo, saved presets and local
// usage counters. Each namespace is a single YAML document validated against
// an embedded JSON Schema on every read and write.
package userdata
