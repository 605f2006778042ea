// Package watch keeps barrels up to date while the source tree changes.
//
// A Source turns fsnotify notifications into a channel of discrete Events.
// The Coordinator consumes that channel on a single goroutine, decides which
// events matter (Trigger) and runs passes so that:
//
//   - at most one pass is in flight at any time;
//   - every qualifying event that arrives during a pass bumps a pending
//     counter, and when the pass ends the counter is reset and exactly one
//     more pass runs, however many events arrived;
//   - events about barrel files never trigger anything, so the writes a pass
//     makes cannot feed back into another pass.
//
// Because events are plain values on a channel, the coordination logic can be
// driven in tests with synthetic events and a fake pass.
package watch
