// Package persistence holds the snapshot wire codec shared by the
// serializing SnapshotStore adapters, and store middlewares under middleware/.
package persistence
