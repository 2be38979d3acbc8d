package entities

// Reduce advances the update state machine by one action and returns the
// next state plus the effects to execute. It is a pure function: no I/O,
// no mutation of the input state.
//
// Ordering guarantees live here. In particular, a rebase or clean update
// can never reach the fetching state without a completed backup: the
// checking transition routes those modes through backup-confirm regardless
// of SkipBackup, and a skip answered there is converted into a backup run.
// Check-only and dry-run runs are the one exception: they stop at the
// preview and mutate nothing, so they carry no backup step at all.
//
// Actions that do not apply to the current state are ignored, and terminal
// states absorb everything. Failed is accepted from any non-terminal state.
func Reduce(state UpdateState, action Action) (UpdateState, []Effect) {
	if state.Status.Terminal() {
		return state, nil
	}

	if failed, ok := action.(Failed); ok {
		state.Status = StatusError
		state.ErrorMessage = failed.Message
		return state, nil
	}

	switch state.Status {
	case StatusChecking:
		return reduceChecking(state, action)
	case StatusBackupConfirm:
		return reduceBackupConfirm(state, action)
	case StatusBackingUp:
		return reduceBackingUp(state, action)
	case StatusFetching:
		return reduceFetching(state, action)
	case StatusPreview:
		return reducePreview(state, action)
	case StatusMerging:
		return reduceMerging(state, action)
	case StatusCleanRestoring:
		return reduceCleanRestoring(state, action)
	case StatusInstalling:
		return reduceInstalling(state, action)
	default:
		return state, nil
	}
}

func reduceChecking(state UpdateState, action Action) (UpdateState, []Effect) {
	checked, ok := action.(GitChecked)
	if !ok {
		return state, nil
	}

	state.Git = checked.Status
	state.BranchWarning = checked.BranchWarning

	switch {
	case !checked.Status.IsRepo:
		state.Status = StatusError
		state.ErrorMessage = "not a git repository"
		return state, nil
	case !checked.Status.IsClean && !state.Options.Force:
		state.Status = StatusDirtyWarning
		return state, nil
	case state.Options.CheckOnly || state.Options.DryRun:
		// Read-only runs stop at the preview, so no backup is offered.
		state.Status = StatusFetching
		return state, []Effect{FetchUpstream{}}
	case state.Options.SkipBackup && !state.Options.BackupMandatory():
		state.Status = StatusFetching
		return state, []Effect{FetchUpstream{}}
	default:
		state.Status = StatusBackupConfirm
		return state, []Effect{ConfirmBackup{Mandatory: state.Options.BackupMandatory()}}
	}
}

func reduceBackupConfirm(state UpdateState, action Action) (UpdateState, []Effect) {
	switch action.(type) {
	case BackupConfirmed:
		state.Status = StatusBackingUp
		return state, []Effect{RunBackup{}}
	case BackupSkipped:
		if state.Options.BackupMandatory() {
			// Rebase and clean rewrite local history: the skip is overridden.
			state.Status = StatusBackingUp
			return state, []Effect{RunBackup{}}
		}
		state.Status = StatusFetching
		return state, []Effect{FetchUpstream{}}
	default:
		return state, nil
	}
}

func reduceBackingUp(state UpdateState, action Action) (UpdateState, []Effect) {
	completed, ok := action.(BackupCompleted)
	if !ok {
		return state, nil
	}

	state.BackupFile = completed.File
	state.Status = StatusFetching
	return state, []Effect{FetchUpstream{}}
}

func reduceFetching(state UpdateState, action Action) (UpdateState, []Effect) {
	fetched, ok := action.(UpstreamFetched)
	if !ok {
		return state, nil
	}

	info := fetched.Info
	state.Info = &info
	state.NeedsMigration = fetched.NeedsMigration

	if !info.HasUpstream || info.UpToDate() {
		state.Status = StatusUpToDate
		return state, nil
	}

	state.Status = StatusPreview
	return state, []Effect{AwaitDecision{}}
}

func reducePreview(state UpdateState, action Action) (UpdateState, []Effect) {
	switch action.(type) {
	case UpdateConfirmed:
		if state.Options.CheckOnly || state.Options.DryRun {
			state.Status = StatusDone
			return state, nil
		}
		state.Status = StatusMerging
		return state, []Effect{RunMerge{Strategy: state.Options.Strategy()}}
	case UpdateCancelled:
		state.Status = StatusCancelled
		return state, nil
	default:
		return state, nil
	}
}

func reduceMerging(state UpdateState, action Action) (UpdateState, []Effect) {
	switch act := action.(type) {
	case MergeCompleted:
		result := act.Result
		state.Merge = &result
		switch {
		case result.Success:
			state.Status = StatusInstalling
			return state, []Effect{InstallDependencies{}}
		case result.HasConflict:
			state.Status = StatusConflict
			return state, nil
		default:
			state.Status = StatusError
			state.ErrorMessage = result.ErrorMessage
			return state, nil
		}
	case CleanReplaced:
		result := act.Result
		state.Clean = &result
		state.Status = StatusCleanRestoring
		return state, []Effect{RestoreContent{}}
	default:
		return state, nil
	}
}

func reduceCleanRestoring(state UpdateState, action Action) (UpdateState, []Effect) {
	restored, ok := action.(ContentRestored)
	if !ok {
		return state, nil
	}

	state.RestoredFiles = restored.Files
	state.Status = StatusInstalling
	return state, []Effect{InstallDependencies{}}
}

func reduceInstalling(state UpdateState, action Action) (UpdateState, []Effect) {
	if _, ok := action.(InstallCompleted); !ok {
		return state, nil
	}

	state.Status = StatusDone
	return state, nil
}
