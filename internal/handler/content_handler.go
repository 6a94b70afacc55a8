package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/portfolio/backend/internal/content"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/navigation"
	"github.com/portfolio/backend/internal/search"
)

// ContentSource is the read side of the public content; content.Store implements it.
type ContentSource interface {
	Posts() []model.BlogPost
	Post(slug string) (model.BlogPost, bool)
	Projects() []model.Project
	SearchIndex() []search.SearchItem
}

var _ ContentSource = (*content.Store)(nil)

// ContentHandler serves navigation, search, blog and project data.
type ContentHandler struct {
	source ContentSource
}

func NewContentHandler(source ContentSource) *ContentHandler {
	return &ContentHandler{source: source}
}

type navResponse struct {
	Items []navigation.NavItem `json:"items"`
}

// Nav handles GET /api/nav?path=
func (h *ContentHandler) Nav(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, navResponse{Items: navigation.NavItemsWithState(r.URL.Query().Get("path"))})
}

type searchResult struct {
	search.SearchItem
	HighlightedTitle string `json:"highlightedTitle"`
}

type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
	Count   int            `json:"count"`
}

// Search handles GET /api/search?q=. An empty query returns no results.
func (h *ContentHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	items := search.SearchItems(h.source.SearchIndex(), q)
	highlight := strings.TrimSpace(q)

	results := make([]searchResult, 0, len(items))
	for _, it := range items {
		results = append(results, searchResult{
			SearchItem:       it,
			HighlightedTitle: search.HighlightMatch(it.Title, highlight),
		})
	}
	writeJSON(w, http.StatusOK, searchResponse{Query: q, Results: results, Count: len(results)})
}

// postSummary is a blog post without its body.
type postSummary struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	DisplayDate string    `json:"displayDate"`
	Excerpt     string    `json:"excerpt"`
	Tags        []string  `json:"tags,omitempty"`
	ReadingTime string    `json:"readingTime"`
}

type postDetail struct {
	postSummary
	Content   string `json:"content"`
	WordCount int    `json:"wordCount"`
}

func summarize(p model.BlogPost) postSummary {
	return postSummary{
		Slug:        p.Slug,
		Title:       p.Title,
		Date:        p.Date,
		DisplayDate: content.FormatDate(p.Date),
		Excerpt:     p.Excerpt,
		Tags:        p.Tags,
		ReadingTime: p.ReadingTime,
	}
}

type blogListResponse struct {
	Posts []postSummary `json:"posts"`
	Count int           `json:"count"`
}

// BlogList handles GET /api/blog?q=. An empty query lists every post.
func (h *ContentHandler) BlogList(w http.ResponseWriter, r *http.Request) {
	posts := search.FilterBlogPosts(h.source.Posts(), r.URL.Query().Get("q"))
	out := make([]postSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, summarize(p))
	}
	writeJSON(w, http.StatusOK, blogListResponse{Posts: out, Count: len(out)})
}

// BlogPost handles GET /api/blog/{slug}.
func (h *ContentHandler) BlogPost(w http.ResponseWriter, r *http.Request) {
	p, ok := h.source.Post(r.PathValue("slug"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
		return
	}
	writeJSON(w, http.StatusOK, postDetail{
		postSummary: summarize(p),
		Content:     p.Content,
		WordCount:   p.WordCount,
	})
}

type projectsResponse struct {
	Projects []model.Project `json:"projects"`
	Count    int             `json:"count"`
}

// Projects handles GET /api/projects?filter=featured|ongoing|completed.
func (h *ContentHandler) Projects(w http.ResponseWriter, r *http.Request) {
	projects := h.source.Projects()
	switch r.URL.Query().Get("filter") {
	case "":
	case "featured":
		projects = content.FeaturedProjects(projects)
	case "ongoing":
		projects = content.OngoingProjects(projects)
	case "completed":
		projects = content.CompletedProjects(projects)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_filter"})
		return
	}
	if projects == nil {
		projects = []model.Project{}
	}
	writeJSON(w, http.StatusOK, projectsResponse{Projects: projects, Count: len(projects)})
}
