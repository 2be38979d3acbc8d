package github

// Exports for white-box testing.
var SplitRepoPath = splitRepoPath //nolint:gochecknoglobals // test export
