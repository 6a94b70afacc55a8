package model

// Project is a portfolio project entry loaded from projects.json.
type Project struct {
	Featured    bool     `json:"featured"`
	Ongoing     bool     `json:"ongoing"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
	LiveLink    string   `json:"liveLink,omitempty"`
	GitHubLink  string   `json:"githubLink"`
}
