package entities

// UpdateStatus identifies one step of the update workflow.
type UpdateStatus int

const (
	StatusChecking UpdateStatus = iota
	StatusDirtyWarning
	StatusBackupConfirm
	StatusBackingUp
	StatusFetching
	StatusPreview
	StatusMerging
	StatusCleanRestoring
	StatusInstalling
	StatusDone
	StatusUpToDate
	StatusConflict
	StatusCancelled
	StatusError
)

// String returns the status name used in logs and reports.
func (s UpdateStatus) String() string {
	switch s {
	case StatusChecking:
		return "checking"
	case StatusDirtyWarning:
		return "dirty-warning"
	case StatusBackupConfirm:
		return "backup-confirm"
	case StatusBackingUp:
		return "backing-up"
	case StatusFetching:
		return "fetching"
	case StatusPreview:
		return "preview"
	case StatusMerging:
		return "merging"
	case StatusCleanRestoring:
		return "clean-restoring"
	case StatusInstalling:
		return "installing"
	case StatusDone:
		return "done"
	case StatusUpToDate:
		return "up-to-date"
	case StatusConflict:
		return "conflict"
	case StatusCancelled:
		return "cancelled"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether the workflow stops in this status. A dirty
// working tree is terminal too: the user must commit, stash, or re-run
// with --force.
func (s UpdateStatus) Terminal() bool {
	switch s {
	case StatusDirtyWarning, StatusDone, StatusUpToDate,
		StatusConflict, StatusCancelled, StatusError:
		return true
	default:
		return false
	}
}

// UpdateState is the full state of one update run. It is only ever
// advanced by Reduce; everything else treats it as read-only.
type UpdateState struct {
	Status  UpdateStatus
	Options UpdateOptions

	Git            GitStatus
	Info           *UpdateInfo
	Merge          *MergeResult
	Clean          *CleanResult
	BackupFile     string
	RestoredFiles  []string
	NeedsMigration bool
	BranchWarning  string
	ErrorMessage   string
}

// NewUpdateState returns the initial state for a run with the given options.
func NewUpdateState(opts UpdateOptions) UpdateState {
	return UpdateState{Status: StatusChecking, Options: opts}
}
