// Package state tracks the health of notedeck's backend connection.
//
// Catalog loads run in background commands and report their outcome with
// Update; the header reads a Snapshot to show whether the backend is
// reachable and whether Canvas credentials are configured.
//
// A failed load keeps the previous config and course count and records the
// error:
//
//	store.Update(nil, 0, err)
//	→ snapshot.Config = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// Two or more failures in a row mark the snapshot offline. A successful load
// resets the counter.
//
// The zero Store is ready to use.
package state
