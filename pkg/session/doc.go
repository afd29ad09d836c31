/*
Package session implements editing-session management and persistence orchestration.

A Manager serializes access to each session with ref-counted local mutexes and,
optionally, a distributed lock shared by every replica. Each unit of work runs
against a store.Store restored from the session's snapshot; the snapshot is
written back only when the work moved the store's version.
*/
package session
