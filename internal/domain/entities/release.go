package entities

import "time"

// ReleaseInfo is the published release metadata for a version tag.
type ReleaseInfo struct {
	TagName     string
	Name        string
	Body        string // Markdown release notes
	URL         string
	PublishedAt time.Time
}
