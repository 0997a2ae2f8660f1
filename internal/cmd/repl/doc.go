// Package replrun executes journal scripts against an in-memory reel
// runtime.
//
// A script is a line-oriented command stream (one command per line, '#'
// comments allowed) driving a single named journal: append/commit writes,
// count and range reads, replay with optional time simulation, and the
// open/close/clear lifecycle. Because the runtime is memory-resident, a
// script is also the session: nothing survives Run returning.
package replrun
