package changelog

import "strings"

// ShortSHALength is the number of hash characters shown for each commit
const ShortSHALength = 7

// Commit is a single commit as returned by the hosting service
type Commit struct {
	URL        string `json:"url" yaml:"url"`
	SHA        string `json:"sha" yaml:"sha"`
	Message    string `json:"message" yaml:"message"`
	AuthorName string `json:"authorName" yaml:"authorName"`
}

// ShortSHA returns the abbreviated hash taken from the trailing path segment of the commit URL
func (c *Commit) ShortSHA() string {
	hash := c.SHA
	if c.URL != "" {
		trimmed := strings.TrimRight(c.URL, "/")
		hash = trimmed[strings.LastIndex(trimmed, "/")+1:]
	}

	if len(hash) < ShortSHALength {
		return hash
	}
	return hash[:ShortSHALength]
}

type Category string

const (
	CategoryFeature       Category = "feature"
	CategoryFix           Category = "fix"
	CategoryConfiguration Category = "configuration"
	CategoryChore         Category = "chore"
	CategoryOther         Category = "other"
)

// Groups holds the rendered lines of every category that can appear in a changelog.
// Each slice keeps the order in which commits were supplied.
type Groups struct {
	Feature       []string `json:"feature" yaml:"feature"`
	Fix           []string `json:"fix" yaml:"fix"`
	Configuration []string `json:"configuration" yaml:"configuration"`
	Other         []string `json:"other" yaml:"other"`
	Dropped       int      `json:"dropped" yaml:"dropped"`
}

// Options controls how a changelog document is built
type Options struct {
	Owner string
	Repo  string
	// IncludeOther renders commits without a recognised prefix in an extra section
	IncludeOther bool
}

// Document is a built changelog ready to be rendered
type Document struct {
	Owner        string
	Repo         string
	IncludeOther bool
	Groups       *Groups
}
