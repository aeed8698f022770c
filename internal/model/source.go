package model

// Source represents one retrieved document fragment handed to the analyzer.
// Sources are read-only inputs owned by the caller for the duration of a
// single analysis call.
type Source struct {
	URL     string `json:"url"`               // Full URL of the document
	Title   string `json:"title,omitempty"`   // Page or result title
	Content string `json:"content,omitempty"` // Full visible text, if fetched
	Snippet string `json:"snippet,omitempty"` // Search-result snippet
}

// Text returns the best available text for the source (content over snippet).
func (s Source) Text() string {
	if s.Content != "" {
		return s.Content
	}
	return s.Snippet
}
