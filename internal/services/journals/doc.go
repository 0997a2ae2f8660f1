// Package journalsvc provides the caller-facing facade over reel's
// journal engine.
//
// # Overview
//
// The service resolves journal names through the runtime registry,
// enforces configured payload limits before writes, and decorates reads
// with sequence IDs and optional CEL payload filtering. Filtering is
// read-side only: expressions see sequence, ts_ms, size, text, json and
// now_ms, and a non-matching entry is simply skipped, never altered.
//
// The engine itself stays silent on success and failure; operational
// logging happens here and in the runtime's journal hooks.
package journalsvc
