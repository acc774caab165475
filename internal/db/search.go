package db

import (
	"fmt"
	"strings"
)

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Filter       string // FT pre-filter query, e.g. `@isArchived:{false}`; empty means `*`
	Vector       []float32
	K            int
	ReturnFields []string
}

// ListQuery is the input for filtered, ordered, paginated retrieval.
type ListQuery struct {
	IndexName    string
	Query        string // FT query string; empty means `*`
	SortBy       string // field alias for SORTBY; empty means index order
	SortDesc     bool
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// TagFilter builds an FT tag filter clause for a single value.
func TagFilter(field, value string) string {
	return fmt.Sprintf("@%s:{%s}", field, EscapeTag(value))
}

// EscapeTag escapes FT tag syntax characters in a filter value.
func EscapeTag(value string) string {
	return tagEscaper.Replace(value)
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)
