// Package content defines blog posts and loads them from markdown files with
// YAML front matter.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"
)

// DateLayout is the on-disk and in-database date format.
const DateLayout = "2006-01-02"

// Post is the core content type stored in SQLite and rendered by the views.
type Post struct {
	Slug        string
	Title       string
	Date        string
	Tags        []string
	Description string
	Image       string // site-relative cover image, "" for the site default
	Content     string
	Published   bool
}

// Link returns the post's site-relative path.
func (p Post) Link() string {
	return "/blog/" + p.Slug
}

// ReadingTime estimates minutes to read the body: non-space runes at 500 per
// minute, at least one.
func (p Post) ReadingTime() int {
	n := 0
	for _, r := range p.Content {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	minutes := n / 500
	if n%500 != 0 {
		minutes++
	}
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

type frontMatter struct {
	Title       string   `yaml:"title"`
	Date        string   `yaml:"date"`
	Tags        []string `yaml:"tags"`
	Description string   `yaml:"description"`
	Image       string   `yaml:"image"`
	Draft       bool     `yaml:"draft"`
}

var delim = []byte("---")

// ErrNoFrontMatter is returned when a file does not open with a "---" block.
var ErrNoFrontMatter = errors.New("content: missing front matter")

// Parse reads one markdown document. The slug is taken from the file name.
func Parse(name string, data []byte) (Post, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(data, delim) {
		return Post{}, fmt.Errorf("%s: %w", name, ErrNoFrontMatter)
	}
	rest := data[len(delim):]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return Post{}, fmt.Errorf("%s: %w", name, ErrNoFrontMatter)
	}

	var fm frontMatter
	if err := yaml.Unmarshal(rest[:end], &fm); err != nil {
		return Post{}, fmt.Errorf("%s: parse front matter: %w", name, err)
	}
	body := rest[end+len("\n---"):]
	body = bytes.TrimLeft(body, "\n")

	slug := Slugify(strings.TrimSuffix(path.Base(name), path.Ext(name)))
	if slug == "" {
		slug = Slugify(fm.Title)
	}
	if slug == "" {
		return Post{}, fmt.Errorf("%s: cannot derive slug", name)
	}
	if strings.TrimSpace(fm.Title) == "" {
		return Post{}, fmt.Errorf("%s: title is required", name)
	}
	date := strings.TrimSpace(fm.Date)
	if date == "" {
		date = time.Now().Format(DateLayout)
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return Post{}, fmt.Errorf("%s: invalid date %q, use YYYY-MM-DD", name, date)
	}

	return Post{
		Slug:        slug,
		Title:       strings.TrimSpace(fm.Title),
		Date:        date,
		Tags:        FilterEmpty(fm.Tags),
		Description: strings.TrimSpace(fm.Description),
		Image:       strings.TrimSpace(fm.Image),
		Content:     string(body),
		Published:   !fm.Draft,
	}, nil
}

// LoadDir parses every *.md file directly under dir in fsys, ordered by date
// descending.
func LoadDir(fsys fs.FS, dir string) ([]Post, error) {
	matches, err := fs.Glob(fsys, path.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}
	posts := make([]Post, 0, len(matches))
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		p, err := Parse(name, data)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
	return posts, nil
}

// Slugify converts a title to a URL-safe slug. Letters outside ASCII (Hangul
// included) are kept so Korean titles still produce readable paths.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r > unicode.MaxASCII && unicode.IsLetter(r):
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// FilterEmpty trims each value and drops the empty ones.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NormalizeTag is the form tags are compared and stored in.
func NormalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
