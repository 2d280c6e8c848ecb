package devlog

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/scato3/devlog/content"
)

const uploadsSubdir = "uploads"

// Importer loads markdown posts from a directory into the store. Covers
// referenced by a relative path are resized into staticDir/uploads and the
// post is pointed at the public copy.
type Importer struct {
	Store     *Store
	StaticDir string
	Log       *log.Logger
}

// ImportResult summarizes one import run.
type ImportResult struct {
	Posts  int
	Drafts int
	Covers int
}

// Import parses every *.md file in dir and upserts it.
func (im *Importer) Import(ctx context.Context, dir string) (ImportResult, error) {
	var res ImportResult
	posts, err := content.LoadDir(os.DirFS(dir), ".")
	if err != nil {
		return res, fmt.Errorf("devlog: load %s: %w", dir, err)
	}
	for _, p := range posts {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if isLocalCover(p.Image) {
			img, err := im.processCover(filepath.Join(dir, filepath.FromSlash(p.Image)), p.Slug)
			if err != nil {
				return res, err
			}
			p.Image = img
			res.Covers++
		}
		if err := im.Store.SavePost(ctx, p); err != nil {
			return res, fmt.Errorf("devlog: save %s: %w", p.Slug, err)
		}
		if p.Published {
			res.Posts++
		} else {
			res.Drafts++
		}
		if im.Log != nil {
			im.Log.Info("imported", "slug", p.Slug, "date", p.Date, "published", p.Published, "image", p.Image)
		}
	}
	return res, nil
}

// isLocalCover reports whether image names a file next to the markdown
// source rather than a site path or remote URL.
func isLocalCover(image string) bool {
	if image == "" || strings.HasPrefix(image, "/") {
		return false
	}
	return !strings.Contains(image, "://")
}

func (im *Importer) processCover(src, slug string) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("devlog: open cover: %w", err)
	}
	defer f.Close()

	cover, data, err := content.ProcessCover(f, slug)
	if err != nil {
		return "", fmt.Errorf("devlog: cover for %s: %w", slug, err)
	}
	dir := filepath.Join(im.StaticDir, uploadsSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, cover.Filename), data, 0o644); err != nil {
		return "", fmt.Errorf("devlog: write cover: %w", err)
	}
	if im.Log != nil {
		im.Log.Debug("cover", "slug", slug, "width", cover.Width, "height", cover.Height, "bytes", cover.Size)
	}
	return path.Join("/public", uploadsSubdir, cover.Filename), nil
}
