// Package content loads blog posts and projects from a content directory:
//
//	<dir>/blog/*.md     markdown with a YAML frontmatter block
//	<dir>/projects.json array of projects
//
// A missing directory or file yields an empty collection rather than an error.
package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/navigation"
	"github.com/portfolio/backend/internal/readingtime"
	"github.com/portfolio/backend/internal/search"
)

const (
	blogDir      = "blog"
	projectsFile = "projects.json"
	untitled     = "Untitled"
)

// dateLayouts are tried in order for the frontmatter date.
var dateLayouts = []string{time.RFC3339, "2006-01-02", DisplayDateLayout}

// DisplayDateLayout renders dates as "January 2, 2006".
const DisplayDateLayout = "January 2, 2006"

// FormatDate formats t for display.
func FormatDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

type frontmatter struct {
	Title   string   `yaml:"title"`
	Date    string   `yaml:"date"`
	Excerpt string   `yaml:"excerpt"`
	Tags    []string `yaml:"tags"`
}

type snapshot struct {
	posts    []model.BlogPost
	bySlug   map[string]int
	projects []model.Project
}

// Store holds the loaded content. Reads are safe while Reload runs.
type Store struct {
	dir string

	mu   sync.RWMutex
	snap *snapshot
}

// NewStore loads dir and returns a Store over it.
func NewStore(dir string) (*Store, error) {
	s := &Store{dir: dir, snap: &snapshot{bySlug: map[string]int{}}}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the content directory.
func (s *Store) Dir() string { return s.dir }

// Reload re-reads the content directory and swaps in the result. On error the
// previous content stays in place.
func (s *Store) Reload() error {
	posts, err := LoadPosts(filepath.Join(s.dir, blogDir))
	if err != nil {
		return err
	}
	projects, err := LoadProjects(filepath.Join(s.dir, projectsFile))
	if err != nil {
		return err
	}

	bySlug := make(map[string]int, len(posts))
	for i, p := range posts {
		bySlug[p.Slug] = i
	}
	s.mu.Lock()
	s.snap = &snapshot{posts: posts, bySlug: bySlug, projects: projects}
	s.mu.Unlock()
	return nil
}

func (s *Store) current() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Posts returns all posts, newest first.
func (s *Store) Posts() []model.BlogPost {
	snap := s.current()
	out := make([]model.BlogPost, len(snap.posts))
	copy(out, snap.posts)
	return out
}

// Post returns the post with slug.
func (s *Store) Post(slug string) (model.BlogPost, bool) {
	snap := s.current()
	i, ok := snap.bySlug[slug]
	if !ok {
		return model.BlogPost{}, false
	}
	return snap.posts[i], true
}

// Projects returns all projects in file order.
func (s *Store) Projects() []model.Project {
	snap := s.current()
	out := make([]model.Project, len(snap.projects))
	copy(out, snap.projects)
	return out
}

// FeaturedProjects returns projects marked featured.
func FeaturedProjects(projects []model.Project) []model.Project {
	return filterProjects(projects, func(p model.Project) bool { return p.Featured })
}

// OngoingProjects returns projects still in progress.
func OngoingProjects(projects []model.Project) []model.Project {
	return filterProjects(projects, func(p model.Project) bool { return p.Ongoing })
}

// CompletedProjects returns projects that are not ongoing.
func CompletedProjects(projects []model.Project) []model.Project {
	return filterProjects(projects, func(p model.Project) bool { return !p.Ongoing })
}

func filterProjects(projects []model.Project, keep func(model.Project) bool) []model.Project {
	out := []model.Project{}
	for _, p := range projects {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// SearchIndex builds the site search index: navigation pages, then
// projects, then posts.
func (s *Store) SearchIndex() []search.SearchItem {
	snap := s.current()
	items := make([]search.SearchItem, 0, len(snap.posts)+len(snap.projects)+5)

	for _, n := range navigation.Items() {
		items = append(items, search.SearchItem{
			Title:    n.Label,
			URL:      n.Href,
			Type:     search.TypePage,
			Keywords: search.Keywords{Text: strings.ToLower(n.Label)},
		})
	}
	for _, p := range snap.projects {
		kw := append([]string{p.Description}, p.TechStack...)
		items = append(items, search.SearchItem{
			Title:    p.Title,
			URL:      "/projects",
			Type:     search.TypeProject,
			Keywords: search.Keywords{List: kw},
		})
	}
	for _, p := range snap.posts {
		item := search.SearchItem{
			Title: p.Title,
			URL:   "/blog/" + p.Slug,
			Type:  search.TypeBlog,
		}
		if len(p.Tags) > 0 {
			item.Keywords = search.Keywords{List: append([]string{p.Excerpt}, p.Tags...)}
		} else {
			item.Keywords = search.Keywords{Text: p.Excerpt}
		}
		items = append(items, item)
	}
	return items
}

// LoadPosts parses every *.md file in dir. Files without frontmatter are skipped.
func LoadPosts(dir string) ([]model.BlogPost, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.BlogPost{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read blog dir: %w", err)
	}

	posts := []model.BlogPost{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		post, ok, err := loadPost(path)
		if err != nil {
			return nil, err
		}
		if !ok {
			slog.Warn("blog post has no frontmatter, skipping", "path", path)
			continue
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].Slug < posts[j].Slug
	})
	return posts, nil
}

func loadPost(path string) (model.BlogPost, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.BlogPost{}, false, fmt.Errorf("read %s: %w", path, err)
	}
	header, body, ok := splitFrontmatter(raw)
	if !ok {
		return model.BlogPost{}, false, nil
	}

	var fm frontmatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return model.BlogPost{}, false, fmt.Errorf("parse frontmatter %s: %w", path, err)
	}

	post := model.BlogPost{
		Slug:    strings.TrimSuffix(filepath.Base(path), ".md"),
		Title:   fm.Title,
		Excerpt: fm.Excerpt,
		Tags:    fm.Tags,
		Content: string(body),
	}
	if post.Title == "" {
		post.Title = untitled
	}
	if d, ok := parseDate(fm.Date); ok {
		post.Date = d
	} else {
		info, err := os.Stat(path)
		if err != nil {
			return model.BlogPost{}, false, fmt.Errorf("stat %s: %w", path, err)
		}
		post.Date = info.ModTime().UTC()
	}

	est := readingtime.CalculateReadingTime(post.Content, readingtime.DefaultWordsPerMinute)
	post.WordCount = est.WordCount
	post.ReadingMinutes = est.Minutes
	post.ReadingTime = readingtime.FormatReadingTime(est.Minutes)
	return post, true, nil
}

// splitFrontmatter separates a leading "---" delimited block from the body.
func splitFrontmatter(raw []byte) (header, body []byte, ok bool) {
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(raw, []byte("---\n")) {
		return nil, nil, false
	}
	rest := raw[len("---\n"):]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, nil, false
	}
	header = rest[:end]
	body = rest[end+len("\n---"):]
	if i := bytes.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = nil
	}
	return header, bytes.TrimLeft(body, "\n"), true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LoadProjects decodes the projects file at path.
func LoadProjects(path string) ([]model.Project, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read projects: %w", err)
	}
	var projects []model.Project
	if err := json.Unmarshal(raw, &projects); err != nil {
		return nil, fmt.Errorf("parse projects: %w", err)
	}
	if projects == nil {
		projects = []model.Project{}
	}
	return projects, nil
}
