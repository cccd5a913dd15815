// Package resync maintains the registry of audio-sync child clips and
// computes their drift from their masters. The registry observes clip
// add/remove events from the sequence and serves position data to the
// resync edit actions.
package resync
