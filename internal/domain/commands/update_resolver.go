package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/astro-koharu/koharu/internal/domain/entities"
	"github.com/astro-koharu/koharu/internal/domain/repositories"
)

// fetchUpstream brings the upstream refs up to date and resolves the full
// update picture. A missing upstream remote is added from the configured
// URL first; with no URL either, the run ends as up-to-date with a notice.
func (it *UpdateCommand) fetchUpstream(
	ctx context.Context,
	settings *entities.Settings,
	state entities.UpdateState,
) entities.Action {
	remote := settings.Upstream.Remote

	if !state.Git.HasUpstreamRemote {
		if settings.Upstream.URL == "" {
			return entities.UpstreamFetched{Info: entities.UpdateInfo{HasUpstream: false}}
		}
		logger.Infof("Adding upstream remote %q -> %s", remote, settings.Upstream.URL)
		if err := it.git.EnsureRemote(ctx, remote, settings.Upstream.URL); err != nil {
			return entities.Failed{Message: fmt.Sprintf("failed to add upstream remote: %v", err)}
		}
	}

	logger.Infof("Fetching %s...", remote)
	if err := it.git.Fetch(ctx, remote); err != nil {
		return entities.Failed{Message: fmt.Sprintf("fetch from %q failed: %v", remote, err)}
	}

	info, needsMigration, err := it.resolveUpdateInfo(ctx, settings, state.Options)
	if err != nil {
		return entities.Failed{Message: err.Error()}
	}

	return entities.UpstreamFetched{Info: info, NeedsMigration: needsMigration}
}

// resolveUpdateInfo computes where the clone stands relative to the target:
//
//  1. current version: newest tag reachable from HEAD, falling back to the
//     version marker file, falling back to "unknown"
//  2. target version: the requested tag when --tag is set (accepted with or
//     without the "v" prefix), otherwise the newest tag reachable from the
//     upstream branch; "unknown" when the template carries no tags
//  3. target ref: the resolved tag, or the upstream branch head when no
//     tag is known
//  4. divergence: commits in the target ref missing locally (behind) and
//     local commits missing from the target ref (ahead)
//  5. downgrade: semver(target) < semver(current), only when both known;
//     on a downgrade the commit list switches direction and enumerates
//     the local commits the downgrade removes
//  6. migration hint: no common ancestor with the upstream branch
func (it *UpdateCommand) resolveUpdateInfo(
	ctx context.Context,
	settings *entities.Settings,
	opts entities.UpdateOptions,
) (entities.UpdateInfo, bool, error) {
	info := entities.UpdateInfo{HasUpstream: true}
	upstreamRef := settings.Upstream.Remote + "/" + settings.Upstream.Branch

	info.CurrentVersion = it.currentVersion(ctx, settings)
	latest, targetRef, err := it.targetVersion(ctx, opts, upstreamRef)
	if err != nil {
		return entities.UpdateInfo{}, false, err
	}
	info.LatestVersion = latest
	info.TargetRef = targetRef

	incoming, err := it.git.CommitRange(ctx, "HEAD", targetRef)
	if err != nil {
		return entities.UpdateInfo{}, false, fmt.Errorf("failed to list incoming commits: %w", err)
	}
	outgoing, err := it.git.CommitRange(ctx, targetRef, "HEAD")
	if err != nil {
		return entities.UpdateInfo{}, false, fmt.Errorf("failed to list local commits: %w", err)
	}
	info.BehindCount = len(incoming)
	info.AheadCount = len(outgoing)
	info.LocalCommits = outgoing
	info.IsDowngrade = entities.IsDowngrade(info.CurrentVersion, info.LatestVersion)

	if info.IsDowngrade {
		// Going backwards: the interesting commits are the ones removed.
		info.Commits = outgoing
	} else {
		info.Commits = incoming
	}

	related, err := it.git.HasCommonAncestor(ctx, "HEAD", upstreamRef)
	if err != nil {
		return entities.UpdateInfo{}, false, fmt.Errorf("failed to compare histories: %w", err)
	}

	if entities.KnownVersion(info.LatestVersion) && !info.UpToDate() {
		info.ReleaseNotes = it.fetchReleaseNotes(ctx, settings, info.LatestVersion)
	}

	return info, !related, nil
}

// currentVersion resolves the installed theme version: the newest tag
// reachable from HEAD, or the version marker file for tag-less forks.
func (it *UpdateCommand) currentVersion(
	ctx context.Context,
	settings *entities.Settings,
) string {
	tag, err := it.git.VersionTag(ctx, "HEAD")
	if err != nil {
		logger.Debugf("no local version tag: %v", err)
	}
	if tag != "" {
		return tag
	}

	if data, readErr := os.ReadFile(settings.VersionFile); readErr == nil {
		if marker := strings.TrimSpace(string(data)); marker != "" {
			return marker
		}
	}
	return entities.UnknownVersion
}

// targetVersion resolves what the update moves to and via which ref.
func (it *UpdateCommand) targetVersion(
	ctx context.Context,
	opts entities.UpdateOptions,
	upstreamRef string,
) (version, ref string, err error) {
	if opts.TargetTag != "" {
		resolved, resolveErr := it.git.ResolveTag(ctx, opts.TargetTag)
		if resolveErr != nil {
			if errors.Is(resolveErr, repositories.ErrTagNotFound) {
				return "", "", fmt.Errorf(
					"version %q does not exist upstream; run 'git tag -l' to see available versions",
					opts.TargetTag,
				)
			}
			return "", "", fmt.Errorf("failed to resolve %q: %w", opts.TargetTag, resolveErr)
		}
		return resolved, resolved, nil
	}

	latest, tagErr := it.git.VersionTag(ctx, upstreamRef)
	if tagErr != nil {
		return "", "", fmt.Errorf("failed to read upstream tags: %w", tagErr)
	}
	if latest == "" {
		// Tag-less template: track the branch head.
		return entities.UnknownVersion, upstreamRef, nil
	}
	return latest, latest, nil
}

// fetchReleaseNotes asks the hosting service for the target release body.
// Strictly best-effort: any failure just means an emptier preview.
func (it *UpdateCommand) fetchReleaseNotes(
	ctx context.Context,
	settings *entities.Settings,
	version string,
) string {
	repo, err := it.releases.Match(settings.Upstream.URL, settings.Upstream.Token)
	if err != nil {
		logger.Debugf("no release source for %q: %v", settings.Upstream.URL, err)
		return ""
	}

	release, err := repo.FetchRelease(ctx, settings.Upstream.URL, version)
	if err != nil {
		logger.Debugf("no release notes for %s: %v", version, err)
		return ""
	}
	return strings.TrimSpace(release.Body)
}
