package entities

// Action is an event fed into the update state machine. Actions are
// produced by the effect executor (git results, backup results) or by the
// presentation shell (user decisions).
type Action interface {
	isAction()
}

// GitChecked reports the preflight snapshot of the local clone.
type GitChecked struct {
	Status        GitStatus
	BranchWarning string // non-empty when the checked-out branch is not the base branch
}

// BackupConfirmed is the user's (or --force's) decision to create a backup.
type BackupConfirmed struct{}

// BackupSkipped is the user's decision to proceed without a backup.
// It is not honoured for rebase or clean updates.
type BackupSkipped struct{}

// BackupCompleted reports a finished backup archive.
type BackupCompleted struct {
	File string
}

// UpstreamFetched reports the resolved update picture after fetching.
type UpstreamFetched struct {
	Info           UpdateInfo
	NeedsMigration bool
}

// UpdateConfirmed is the decision to apply the previewed update.
type UpdateConfirmed struct{}

// UpdateCancelled is the decision to stop at the preview.
type UpdateCancelled struct{}

// MergeCompleted reports the outcome of a merge or rebase attempt.
type MergeCompleted struct {
	Result MergeResult
}

// CleanReplaced reports a finished clean-mode tree replacement.
type CleanReplaced struct {
	Result CleanResult
}

// ContentRestored reports the user-content paths restored after a clean replace.
type ContentRestored struct {
	Files []string
}

// InstallCompleted reports a finished dependency install.
type InstallCompleted struct{}

// Failed aborts the workflow with a message. Valid from any non-terminal state.
type Failed struct {
	Message string
}

func (GitChecked) isAction()      {}
func (BackupConfirmed) isAction() {}
func (BackupSkipped) isAction()   {}
func (BackupCompleted) isAction() {}
func (UpstreamFetched) isAction() {}
func (UpdateConfirmed) isAction() {}
func (UpdateCancelled) isAction() {}
func (MergeCompleted) isAction()  {}
func (CleanReplaced) isAction()   {}
func (ContentRestored) isAction() {}
func (InstallCompleted) isAction() {}
func (Failed) isAction()          {}
