package config

// Search holds the hosted search index credentials. Only the search-only key is
// ever configured here; indexing happens in the commerce backend.
type Search struct {
	AppID       string `env:"ALGOLIA_APP_ID"`
	APIKey      string `env:"ALGOLIA_SEARCH_API_KEY"`
	IndexName   string `env:"ALGOLIA_INDEX_NAME" envDefault:"products"`
	HitsPerPage int    `env:"SEARCH_HITS_PER_PAGE" envDefault:"12"`
}

func (s Search) Enabled() bool {
	return s.AppID != "" && s.APIKey != "" && s.IndexName != ""
}
