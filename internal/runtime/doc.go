// Package runtime wires config, logging, and the named-journal registry
// for a single in-process reel instance.
//
// Journals are created on first use via EnsureJournal, validated against
// the configured name pattern and journal cap, and opened with hooks that
// emit debug logs for lifecycle and write events. Everything is
// memory-resident; closing the runtime closes its journals and nothing
// survives the process.
package runtime
