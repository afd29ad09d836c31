/*
Package store owns one editable Collection and the cursors pointing into it.

Every mutation goes through the copy-on-write accessors of package tree, so each
accepted write installs a new Collection value and bumps the store version.
Derived aggregates (total and current score) are memoized against that version.

A Store is not safe for concurrent use: it follows a run-to-completion model where
each mutation finishes before the next one starts. Callers that share a Store across
goroutines (see package session) serialize access themselves.
*/
package store
