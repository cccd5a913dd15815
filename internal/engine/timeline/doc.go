// Package timeline provides the frame-accounting data model of the
// editor: sequences, tracks, clips, blanks, filters, compositors and
// sync bindings, together with the atomic segment operations that keep
// the model and the media engine's native structures consistent.
//
// Every track holds an ordered list of segments covering [0, length)
// contiguously. The engine mirrors that list index for index, and the
// atomic operations on Sequence are the only code allowed to mutate
// either side. Higher-level reversible edits are built from these
// atomics in the edit package.
//
// Two conventions from the engine API thread through everything here:
// clip out frames are inclusive (length = out - in + 1), and the
// engine's blank insertion takes the blank's last frame, i.e.
// length - 1.
package timeline
