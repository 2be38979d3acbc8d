package entities

// Effect is an instruction emitted by the update state machine. The
// machine itself performs no I/O: the command layer executes each effect
// and feeds the outcome back in as the next Action.
type Effect interface {
	isEffect()
}

// CheckGit takes the preflight snapshot of the local clone.
type CheckGit struct{}

// ConfirmBackup asks whether a backup should be created. When Mandatory
// is set the executor must not offer a skip.
type ConfirmBackup struct {
	Mandatory bool
}

// RunBackup creates the pre-update backup archive.
type RunBackup struct{}

// FetchUpstream fetches the upstream remote and resolves the update picture.
type FetchUpstream struct{}

// AwaitDecision presents the preview and waits for confirm or cancel.
type AwaitDecision struct{}

// RunMerge applies the update with the given strategy. For StrategyClean
// this is the tree replacement step.
type RunMerge struct {
	Strategy UpdateStrategy
}

// RestoreContent restores user-content paths from the backup after a
// clean-mode replacement.
type RestoreContent struct{}

// InstallDependencies runs the package-manager install step.
type InstallDependencies struct{}

func (CheckGit) isEffect()            {}
func (ConfirmBackup) isEffect()       {}
func (RunBackup) isEffect()           {}
func (FetchUpstream) isEffect()       {}
func (AwaitDecision) isEffect()       {}
func (RunMerge) isEffect()            {}
func (RestoreContent) isEffect()      {}
func (InstallDependencies) isEffect() {}
