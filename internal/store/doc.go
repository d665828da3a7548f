// Package store provides SQLite-backed storage for compiled components.
//
// The store is a content-addressed cache: each row is keyed by the
// conversion ID of its markup and options (see ir.ConversionID), so a hit
// is byte-identical to recompiling.
//
// # Ordering
//
// Rows carry a seq INTEGER stamped by a logical clock that resumes from the
// stored maximum on Open. Listing always orders by seq ASC, id ASC COLLATE
// BINARY; wall time is never recorded.
//
// Each Store stamps its rows with a run ID (UUIDv7 by default) so entries
// written by one compile invocation can be told apart.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
