// Package tree implements safe, copy-on-write access to untyped nested values.
//
// A tree is built from map[string]any (objects), []any (lists) and scalars.
// Reads never fail: a missing or mistyped step yields the caller's default.
// Writes never mutate their input: every ancestor along the written path is
// shallow-copied and untouched siblings are shared with the previous tree.
package tree
