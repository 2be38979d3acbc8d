package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/astro-koharu/koharu/internal/domain/entities"
)

// NewPost is the interface for the new-post command.
type NewPost interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		opts NewPostOptions,
	) (string, error)
}

// NewPostOptions holds runtime options for scaffolding a post.
type NewPostOptions struct {
	Title string
	Draft bool
	Dir   string // overrides the configured content directory
}

// NewPostCommand scaffolds a Markdown post in the content collection.
type NewPostCommand struct{}

// NewNewPostCommand creates a new NewPostCommand.
func NewNewPostCommand() *NewPostCommand {
	return &NewPostCommand{}
}

// slugPattern keeps letters and digits from any script: post titles are
// often CJK, and those characters are perfectly valid in file names.
var slugPattern = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Execute creates the post file and returns its path.
func (it *NewPostCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts NewPostOptions,
) (string, error) {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		return "", fmt.Errorf("post title must not be empty")
	}

	slug := Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("cannot derive a file name from title %q", title)
	}

	dir := opts.Dir
	if dir == "" {
		dir = settings.ContentDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	path := filepath.Join(dir, slug+".md")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}

	content := postFrontMatter(title, opts.Draft, time.Now())
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	logger.Infof("Created %s", path)
	return path, nil
}

// Slugify turns a post title into a URL- and file-safe slug.
func Slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

func postFrontMatter(title string, draft bool, now time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", title)
	fmt.Fprintf(&b, "date: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "draft: %t\n", draft)
	b.WriteString("tags: []\n")
	b.WriteString("---\n\n")
	return b.String()
}
