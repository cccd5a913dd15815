// Package edit implements the reversible edit actions of the timeline
// editor. Every user-visible mutation (inserts, cuts, trims, moves,
// filter and compositor changes, sync operations) is packaged as an
// Action with a forward and a backward operation over captured state,
// built from the atomic segment operations in the timeline package.
//
// An action is constructed, run once with Do (its first forward run),
// then pushed onto the history stack. Undo invokes the backward
// operation; redo re-invokes the same forward operation, which receives
// an explicit first-run flag because several actions create clones or
// filter objects on the first run only.
//
// Execution collaborators (player, selection, GUI, resync source) are
// carried by a Context passed into every run rather than by process
// state; batch operations suppress GUI refreshes through it.
package edit
