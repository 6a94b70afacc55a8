package content

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

const projectsJSON = `[
  {"featured": true, "ongoing": false, "title": "Portfolio", "description": "This site", "techStack": ["Go", "Astro"], "liveLink": "https://example.com", "githubLink": "https://github.com/x/portfolio"},
  {"featured": false, "ongoing": true, "title": "Compiler", "description": "Toy language", "techStack": ["Rust"], "githubLink": "https://github.com/x/compiler"}
]`

func newTestDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "blog", "first-post.md"), `---
title: First Post
date: 2024-01-15
excerpt: Getting started with Go
tags: [go, intro]
---

Hello world this is the body.
`)
	writeFile(t, filepath.Join(dir, "blog", "second.md"), "---\r\ntitle: Second\r\ndate: \"2024-03-01T10:00:00Z\"\r\nexcerpt: Later\r\n---\r\nShort.\r\n")
	writeFile(t, filepath.Join(dir, "blog", "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, "blog", "draft.md"), "no frontmatter here")
	writeFile(t, filepath.Join(dir, "projects.json"), projectsJSON)
	return dir
}

func TestNewStore_LoadsPosts(t *testing.T) {
	s, err := NewStore(newTestDir(t))
	require.NoError(t, err)

	posts := s.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "second", posts[0].Slug, "newest first")
	assert.Equal(t, "first-post", posts[1].Slug)

	first := posts[1]
	assert.Equal(t, "First Post", first.Title)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "Getting started with Go", first.Excerpt)
	assert.Equal(t, []string{"go", "intro"}, first.Tags)
	assert.Equal(t, "Hello world this is the body.\n", first.Content)
	assert.Equal(t, 6, first.WordCount)
	assert.Equal(t, 1, first.ReadingMinutes)
	assert.Equal(t, "1 min read", first.ReadingTime)

	assert.Equal(t, "Short.\n", posts[0].Content)
}

func TestNewStore_DefaultsTitleAndDate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blog", "bare.md")
	writeFile(t, path, "---\nexcerpt: x\n---\nbody\n")
	mtime := time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	s, err := NewStore(dir)
	require.NoError(t, err)

	p, ok := s.Post("bare")
	require.True(t, ok)
	assert.Equal(t, "Untitled", p.Title)
	assert.True(t, mtime.Equal(p.Date))
}

func TestNewStore_MissingDir(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, s.Posts())
	assert.Empty(t, s.Projects())
}

func TestNewStore_BadFrontmatter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "blog", "bad.md"), "---\ntitle: [oops\n---\nbody\n")

	_, err := NewStore(dir)
	assert.Error(t, err)
}

func TestStore_Post(t *testing.T) {
	s, err := NewStore(newTestDir(t))
	require.NoError(t, err)

	p, ok := s.Post("first-post")
	require.True(t, ok)
	assert.Equal(t, "First Post", p.Title)

	_, ok = s.Post("draft")
	assert.False(t, ok)
}

func TestStore_Projects(t *testing.T) {
	s, err := NewStore(newTestDir(t))
	require.NoError(t, err)

	projects := s.Projects()
	require.Len(t, projects, 2)
	assert.Equal(t, "Portfolio", projects[0].Title)
	assert.Equal(t, []string{"Go", "Astro"}, projects[0].TechStack)
	assert.Equal(t, "", projects[1].LiveLink)

	assert.Equal(t, []string{"Portfolio"}, projectTitles(FeaturedProjects(projects)))
	assert.Equal(t, []string{"Compiler"}, projectTitles(OngoingProjects(projects)))
	assert.Equal(t, []string{"Portfolio"}, projectTitles(CompletedProjects(projects)))
	assert.NotNil(t, FeaturedProjects(nil))
}

func projectTitles(ps []model.Project) []string {
	out := []string{}
	for _, p := range ps {
		out = append(out, p.Title)
	}
	return out
}

func TestStore_Reload(t *testing.T) {
	dir := newTestDir(t)
	s, err := NewStore(dir)
	require.NoError(t, err)
	require.Len(t, s.Posts(), 2)

	writeFile(t, filepath.Join(dir, "blog", "third.md"), "---\ntitle: Third\ndate: 2025-01-01\n---\nnew\n")
	require.NoError(t, s.Reload())
	assert.Len(t, s.Posts(), 3)
	assert.Equal(t, "third", s.Posts()[0].Slug)
}

func TestStore_ReloadKeepsOldContentOnError(t *testing.T) {
	dir := newTestDir(t)
	s, err := NewStore(dir)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "projects.json"), "{not json")
	assert.Error(t, s.Reload())
	assert.Len(t, s.Projects(), 2)
}

func TestStore_SearchIndex(t *testing.T) {
	s, err := NewStore(newTestDir(t))
	require.NoError(t, err)

	idx := s.SearchIndex()
	require.Len(t, idx, 5+2+2)
	assert.Equal(t, search.TypePage, idx[0].Type)

	got := search.SearchItems(idx, "rust")
	require.Len(t, got, 1)
	assert.Equal(t, "Compiler", got[0].Title)
	assert.Equal(t, search.TypeProject, got[0].Type)

	got = search.SearchItems(idx, "intro")
	require.Len(t, got, 1)
	assert.Equal(t, "/blog/first-post", got[0].URL)

	got = search.SearchItems(idx, "later")
	require.Len(t, got, 1)
	assert.Equal(t, "Second", got[0].Title)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "January 15, 2024", FormatDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
}

func TestSplitFrontmatter(t *testing.T) {
	header, body, ok := splitFrontmatter([]byte("---\na: 1\n---\nbody"))
	require.True(t, ok)
	assert.Equal(t, "a: 1", string(header))
	assert.Equal(t, "body", string(body))

	_, _, ok = splitFrontmatter([]byte("---\nunterminated"))
	assert.False(t, ok)

	_, body, ok = splitFrontmatter([]byte("---\na: 1\n---"))
	require.True(t, ok)
	assert.Empty(t, body)
}
