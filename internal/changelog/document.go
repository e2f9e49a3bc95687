package changelog

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Section is a rendered block of the changelog
type Section struct {
	Title    string
	Category Category
	Lines    []string
}

// Group classifies and formats commits in the order they are given
func Group(commits []*Commit) *Groups {
	groups := &Groups{
		Feature:       make([]string, 0),
		Fix:           make([]string, 0),
		Configuration: make([]string, 0),
		Other:         make([]string, 0),
	}

	for _, commit := range commits {
		category := Classify(commit.Message)
		log.Trace().
			Str("sha", commit.ShortSHA()).
			Str("category", string(category)).
			Msg("Classified commit")

		switch category {
		case CategoryFeature:
			groups.Feature = append(groups.Feature, FormatLine(commit))
		case CategoryFix:
			groups.Fix = append(groups.Fix, FormatLine(commit))
		case CategoryConfiguration:
			groups.Configuration = append(groups.Configuration, FormatLine(commit))
		case CategoryOther:
			groups.Other = append(groups.Other, FormatLine(commit))
		default:
			groups.Dropped++
		}
	}

	return groups
}

// Build groups the commits and returns a document for the given repository
func Build(commits []*Commit, options *Options) *Document {
	groups := Group(commits)

	log.Debug().
		Int("features", len(groups.Feature)).
		Int("fixes", len(groups.Fix)).
		Int("configurations", len(groups.Configuration)).
		Int("other", len(groups.Other)).
		Int("dropped", groups.Dropped).
		Msg("Grouped commits")

	return &Document{
		Owner:        options.Owner,
		Repo:         options.Repo,
		IncludeOther: options.IncludeOther,
		Groups:       groups,
	}
}

// Sections returns the non-empty sections in render order: Features, Configurations, Issues
func (d *Document) Sections() []*Section {
	candidates := []*Section{
		{Title: "Features", Category: CategoryFeature, Lines: d.Groups.Feature},
		{Title: "Configurations", Category: CategoryConfiguration, Lines: d.Groups.Configuration},
		{Title: "Issues", Category: CategoryFix, Lines: d.Groups.Fix},
	}
	if d.IncludeOther {
		candidates = append(candidates, &Section{Title: "Other Changes", Category: CategoryOther, Lines: d.Groups.Other})
	}

	sections := make([]*Section, 0, len(candidates))
	for _, section := range candidates {
		if len(section.Lines) > 0 {
			sections = append(sections, section)
		}
	}
	return sections
}

// Markdown renders the document
func (d *Document) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# " + d.Repo + "\n")
	sb.WriteString("##### by " + d.Owner + "\n")

	for _, section := range d.Sections() {
		sb.WriteString("### " + section.Title + "\n\n")
		sb.WriteString(strings.Join(section.Lines, "\n"))
		sb.WriteString("\n\n")
	}

	return sb.String()
}
