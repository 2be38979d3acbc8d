package entities

// GitStatus is a snapshot of the local clone taken before an update run.
type GitStatus struct {
	IsRepo            bool     // the working directory is inside a git repository
	IsClean           bool     // no staged, unstaged or untracked changes
	CurrentBranch     string   // checked-out branch, or short SHA when detached
	ModifiedFiles     []string // paths reported dirty by git status
	HasUpstreamRemote bool     // the configured upstream remote exists
}
