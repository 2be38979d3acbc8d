package entities

import "time"

// ManifestFormatVersion is the backup manifest format written and accepted
// by this build. Restores from a different format version fail closed.
const ManifestFormatVersion = 2

// BackupItem is one backed-up user-content path and its file count.
type BackupItem struct {
	Path      string `json:"path"`
	FileCount int    `json:"fileCount"`
}

// BackupManifest describes the contents of a backup archive. It is stored
// as the first entry of the archive so restores can be previewed and
// validated without unpacking everything.
type BackupManifest struct {
	FormatVersion int          `json:"formatVersion"`
	CreatedAt     time.Time    `json:"createdAt"`
	ThemeVersion  string       `json:"themeVersion,omitempty"`
	Full          bool         `json:"full"`
	Items         []BackupItem `json:"items"`
}

// BackupResult reports a completed backup.
type BackupResult struct {
	File      string
	SizeBytes int64
	Manifest  BackupManifest
}
