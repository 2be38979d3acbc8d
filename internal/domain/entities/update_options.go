package entities

import "errors"

// ErrIncompatibleModes is returned when mutually exclusive update modes are combined.
var ErrIncompatibleModes = errors.New("--rebase and --clean cannot be combined")

// UpdateStrategy selects how upstream changes are applied to the local clone.
type UpdateStrategy int

const (
	// StrategyMerge merges the upstream ref into the current branch (default).
	StrategyMerge UpdateStrategy = iota
	// StrategyRebase replays local commits on top of the upstream ref.
	StrategyRebase
	// StrategyClean replaces the theme tree with upstream's and restores user content.
	StrategyClean
)

// String returns the human-readable strategy name.
func (s UpdateStrategy) String() string {
	switch s {
	case StrategyRebase:
		return "rebase"
	case StrategyClean:
		return "clean"
	default:
		return "merge"
	}
}

// UpdateOptions holds runtime options for a single update run.
type UpdateOptions struct {
	CheckOnly  bool   // report whether an update exists, change nothing
	SkipBackup bool   // skip the backup step (ignored for rebase/clean)
	Force      bool   // auto-confirm prompts and proceed on a dirty tree
	TargetTag  string // update to a specific version instead of the latest
	Rebase     bool   // rebase local commits instead of merging
	Clean      bool   // clean replace + restore instead of merging
	DryRun     bool   // resolve and report the full plan, then stop
	Verbose    bool
}

// Validate rejects option combinations that have no defined behaviour.
func (o UpdateOptions) Validate() error {
	if o.Rebase && o.Clean {
		return ErrIncompatibleModes
	}
	return nil
}

// Strategy returns the update strategy implied by the mode flags.
func (o UpdateOptions) Strategy() UpdateStrategy {
	switch {
	case o.Rebase:
		return StrategyRebase
	case o.Clean:
		return StrategyClean
	default:
		return StrategyMerge
	}
}

// BackupMandatory reports whether the backup step may not be skipped.
// Rebase and clean updates rewrite or replace local history, so they
// always require a completed backup before anything destructive runs.
func (o UpdateOptions) BackupMandatory() bool {
	return o.Rebase || o.Clean
}
