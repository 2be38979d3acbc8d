package git

import "strings"

// parsePorcelainStatus extracts the dirty paths from `git status --porcelain`
// output. Renames keep the new name; quoted paths lose their quotes.
func parsePorcelainStatus(out string) []string {
	var files []string
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		path := strings.TrimSpace(line[3:])
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+4:]
		}
		path = strings.Trim(path, `"`)
		if path != "" {
			files = append(files, path)
		}
	}
	return files
}

// parseNameList splits one-path-per-line git output into a clean slice.
func parseNameList(out string) []string {
	var files []string
	for _, line := range strings.Split(out, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			files = append(files, strings.Trim(trimmed, `"`))
		}
	}
	return files
}
