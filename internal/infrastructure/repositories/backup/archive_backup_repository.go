// Package backup archives user-content paths into tar.gz files with an
// embedded JSON manifest, and restores them path-scoped.
package backup

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/astro-koharu/koharu/internal/domain/entities"
)

// ErrManifestFormat is returned when an archive was written by an
// incompatible build. Restores fail closed on it.
var ErrManifestFormat = errors.New("backup manifest format not supported")

// manifestEntry is the archive name of the manifest, always the first entry.
const manifestEntry = "koharu-backup.json"

// fullExtras are the project files added by a --full backup.
var fullExtras = []string{
	"package.json",
	"astro.config.mjs",
	"astro.config.ts",
	"pnpm-lock.yaml",
	"yarn.lock",
	"package-lock.json",
	"bun.lockb",
}

// ArchiveBackupRepository implements the backup contract on the local
// filesystem, rooted at the working directory.
type ArchiveBackupRepository struct {
	settings *entities.Settings
}

// NewArchiveBackupRepository creates a backup repository for the given settings.
func NewArchiveBackupRepository(settings *entities.Settings) *ArchiveBackupRepository {
	return &ArchiveBackupRepository{settings: settings}
}

// Create archives the user-content paths (plus project files when full)
// into a new tar.gz under the configured backup directory. Configured
// paths that do not exist are skipped, not errors.
func (it *ArchiveBackupRepository) Create(
	_ context.Context,
	full bool,
) (entities.BackupResult, error) {
	paths := it.settings.ConflictPolicy().Paths()
	if full {
		for _, extra := range fullExtras {
			if _, err := os.Stat(extra); err == nil {
				paths = append(paths, extra)
			}
		}
	}

	items, files, err := collectItems(paths)
	if err != nil {
		return entities.BackupResult{}, err
	}
	if len(items) == 0 {
		return entities.BackupResult{}, fmt.Errorf(
			"nothing to back up: none of the configured paths exist",
		)
	}

	manifest := entities.BackupManifest{
		FormatVersion: entities.ManifestFormatVersion,
		CreatedAt:     time.Now().UTC(),
		ThemeVersion:  it.readVersionMarker(),
		Full:          full,
		Items:         items,
	}

	if mkErr := os.MkdirAll(it.settings.BackupDir, 0o755); mkErr != nil {
		return entities.BackupResult{}, fmt.Errorf("failed to create backup dir: %w", mkErr)
	}

	file := filepath.Join(
		it.settings.BackupDir,
		fmt.Sprintf("koharu-backup-%s.tar.gz", manifest.CreatedAt.Format("20060102-150405")),
	)
	if writeErr := writeArchive(file, manifest, files); writeErr != nil {
		return entities.BackupResult{}, writeErr
	}

	info, err := os.Stat(file)
	if err != nil {
		return entities.BackupResult{}, fmt.Errorf("failed to stat backup: %w", err)
	}

	return entities.BackupResult{
		File:      file,
		SizeBytes: info.Size(),
		Manifest:  manifest,
	}, nil
}

// Preview reads the manifest without unpacking anything else.
func (it *ArchiveBackupRepository) Preview(file string) (entities.BackupManifest, error) {
	f, err := os.Open(file)
	if err != nil {
		return entities.BackupManifest{}, fmt.Errorf("failed to open backup: %w", err)
	}
	defer f.Close()

	manifest, _, err := readManifest(f)
	return manifest, err
}

// Restore unpacks the archive over the working directory. A non-empty
// "only" list limits the restore to entries under those paths. The archive
// is rejected outright when its manifest format differs from this build's.
func (it *ArchiveBackupRepository) Restore(
	_ context.Context,
	file string,
	only []string,
) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open backup: %w", err)
	}
	defer f.Close()

	manifest, tr, err := readManifest(f)
	if err != nil {
		return nil, err
	}
	if manifest.FormatVersion != entities.ManifestFormatVersion {
		return nil, fmt.Errorf(
			"%w: archive has format %d, this build expects %d",
			ErrManifestFormat, manifest.FormatVersion, entities.ManifestFormatVersion,
		)
	}

	restored := make(map[string]bool)
	for {
		hdr, nextErr := tr.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}
		if nextErr != nil {
			return nil, fmt.Errorf("failed to read backup: %w", nextErr)
		}

		name := path.Clean(hdr.Name)
		if !fs.ValidPath(name) {
			return nil, fmt.Errorf("unsafe path in backup: %q", hdr.Name)
		}

		item := matchItem(manifest.Items, name)
		if item == "" {
			logger.Debugf("skipping stray archive entry %q", name)
			continue
		}
		if len(only) > 0 && !underAny(name, only) {
			continue
		}

		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if writeErr := writeEntry(name, hdr, tr); writeErr != nil {
			return nil, writeErr
		}
		restored[item] = true
	}

	paths := make([]string, 0, len(restored))
	for p := range restored {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

func (it *ArchiveBackupRepository) readVersionMarker() string {
	data, err := os.ReadFile(it.settings.VersionFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// collectItems walks the configured paths and returns the manifest items
// plus the flat list of files to archive.
func collectItems(paths []string) ([]entities.BackupItem, []string, error) {
	var items []entities.BackupItem
	var files []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			logger.Debugf("skipping %s: %v", p, err)
			continue
		}

		if !info.IsDir() {
			items = append(items, entities.BackupItem{Path: filepath.ToSlash(p), FileCount: 1})
			files = append(files, p)
			continue
		}

		count := 0
		walkErr := filepath.WalkDir(p, func(fp string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if !d.Type().IsRegular() {
				logger.Debugf("skipping non-regular file %s", fp)
				return nil
			}
			count++
			files = append(files, fp)
			return nil
		})
		if walkErr != nil {
			return nil, nil, fmt.Errorf("failed to scan %s: %w", p, walkErr)
		}
		items = append(items, entities.BackupItem{Path: filepath.ToSlash(p), FileCount: count})
	}

	return items, files, nil
}

// writeArchive writes the manifest entry first, then every file.
func writeArchive(file string, manifest entities.BackupManifest, files []string) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	if err := writeManifest(tw, manifest); err != nil {
		return err
	}
	for _, p := range files {
		if err := writeFile(tw, p); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finish backup: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to finish backup: %w", err)
	}
	return f.Close()
}

func writeManifest(tw *tar.Writer, manifest entities.BackupManifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	hdr := &tar.Header{
		Name:    manifestEntry,
		Mode:    0o644,
		Size:    int64(len(data)),
		ModTime: manifest.CreatedAt,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if _, err := tw.Write(data); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

func writeFile(tw *tar.Writer, p string) error {
	info, err := os.Stat(p)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", p, err)
	}

	hdr := &tar.Header{
		Name:    filepath.ToSlash(p),
		Mode:    int64(info.Mode().Perm()),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", p, err)
	}

	f, err := os.Open(p)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", p, err)
	}
	defer f.Close()

	if _, err := io.Copy(tw, f); err != nil {
		return fmt.Errorf("failed to archive %s: %w", p, err)
	}
	return nil
}

// readManifest reads the mandatory first entry and leaves the reader
// positioned at the second.
func readManifest(r io.Reader) (entities.BackupManifest, *tar.Reader, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return entities.BackupManifest{}, nil, fmt.Errorf("not a koharu backup: %w", err)
	}
	tr := tar.NewReader(gz)

	hdr, err := tr.Next()
	if err != nil {
		return entities.BackupManifest{}, nil, fmt.Errorf("not a koharu backup: %w", err)
	}
	if hdr.Name != manifestEntry {
		return entities.BackupManifest{}, nil, fmt.Errorf(
			"not a koharu backup: first entry is %q, expected %q", hdr.Name, manifestEntry,
		)
	}

	var manifest entities.BackupManifest
	if err := json.NewDecoder(tr).Decode(&manifest); err != nil {
		return entities.BackupManifest{}, nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return manifest, tr, nil
}

func writeEntry(name string, hdr *tar.Header, tr *tar.Reader) error {
	if dir := path.Dir(name); dir != "." {
		if err := os.MkdirAll(filepath.FromSlash(dir), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	mode := fs.FileMode(hdr.Mode).Perm()
	if mode == 0 {
		mode = 0o644
	}
	f, err := os.OpenFile(filepath.FromSlash(name), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, tr); err != nil {
		return fmt.Errorf("failed to restore %s: %w", name, err)
	}
	return f.Close()
}

func matchItem(items []entities.BackupItem, name string) string {
	for _, item := range items {
		if name == item.Path || strings.HasPrefix(name, item.Path+"/") {
			return item.Path
		}
	}
	return ""
}

func underAny(name string, bases []string) bool {
	for _, base := range bases {
		base = strings.Trim(filepath.ToSlash(base), "/")
		if name == base || strings.HasPrefix(name, base+"/") {
			return true
		}
	}
	return false
}
