package gitlab

// Exports for white-box testing.
var (
	ProjectPath = projectPath //nolint:gochecknoglobals // test export
	ReleaseURL  = releaseURL  //nolint:gochecknoglobals // test export
)
