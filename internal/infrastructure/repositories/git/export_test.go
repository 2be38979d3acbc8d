package git

// Exports for white-box testing.
var (
	ParsePorcelainStatus = parsePorcelainStatus //nolint:gochecknoglobals // test export
	ParseNameList        = parseNameList        //nolint:gochecknoglobals // test export
	ReplacePaths         = replacePaths         //nolint:gochecknoglobals // test export
)
