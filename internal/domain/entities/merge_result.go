package entities

// MergeResult is the outcome of a merge or rebase attempt, including the
// auto-resolution pass over user-content conflicts.
type MergeResult struct {
	Success       bool
	HasConflict   bool     // unresolved conflicts remain after auto-resolution
	ConflictFiles []string // paths still conflicted, sorted
	AutoResolved  []string // user-content paths resolved to the local version
	IsRebase      bool
	ErrorMessage  string // failure reason when neither Success nor HasConflict
}

// CleanResult is the outcome of a clean-mode tree replacement. It exists as
// its own type so a rollback anchor can never appear on a plain merge.
type CleanResult struct {
	PreCleanSHA   string   // commit to reset back to if the restore fails
	ReplacedPaths []string // top-level paths taken from the upstream tree
}
