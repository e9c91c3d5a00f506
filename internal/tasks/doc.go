// Package tasks implements the refresh pipeline: availability checking and alternative resolution.
//
// # Core Operations
//
//  1. [Prober.CheckAll] : Probe every playlist entry against the catalog
//     - Runs at most N probes at once (default [DefaultWorkers])
//     - Waits for every probe before returning
//     - Partitions entries into available, unavailable and inconclusive
//
//  2. [Resolver.ResolveAll] : Look for replacements of each unavailable entry
//     - Entries with title and channel: two catalog searches (title, then title + channel)
//     - Entries without: walk archived snapshots oldest first, recover the page title, search for it
//     - Yields one [models.Result] per entry, in completion order
//
// # Progress Reporting
//
// Both stages accept an optional progress channel.
// The [ProgressUpdate] struct contains phase, step counters and a message.
// Updates use select with default to prevent blocking.
//
// # Failure Scoping
//
// A failed search or archive request only affects the entry being resolved. The entry still
// produces a result: a [models.Success] with SearchErr set, or one of the failure variants.
// A probe that cannot reach the catalog is reported as inconclusive, never as unavailable.
package tasks
