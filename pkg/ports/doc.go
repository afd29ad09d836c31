/*
Package ports defines the driven ports (interfaces) of an easel editing service.

These interfaces decouple sessions from external implementations, so the same
editor can run over various snapshot backends and deck sources.

# Key Interfaces

  - SnapshotStore: persists and loads session Snapshots (memory, file, redis, sqlite).
  - DeckLoader: produces an authored Deck (single file or a Loam directory).
  - DistributedLocker: coordinates concurrent access to a session across replicas.
*/
package ports
