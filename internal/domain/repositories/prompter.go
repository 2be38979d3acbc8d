package repositories

// Prompter asks the user yes/no questions. The update workflow only ever
// consults it on interactive decision points; --force bypasses it entirely.
type Prompter interface {
	Confirm(question string, defaultYes bool) (bool, error)
}
