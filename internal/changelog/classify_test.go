package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Category
	}{
		{name: "feature", message: "feat: add login", want: CategoryFeature},
		{name: "feature with scope", message: "feat(auth): add login", want: CategoryFeature},
		{name: "feature upper case", message: "FEAT: shout", want: CategoryFeature},
		{name: "feature without colon", message: "feature flags everywhere", want: CategoryFeature},
		{name: "fix", message: "fix: null pointer", want: CategoryFix},
		{name: "fix mixed case", message: "Fix: typo", want: CategoryFix},
		{name: "configuration", message: "config: bump timeout", want: CategoryConfiguration},
		{name: "configuration long form", message: "configuration: new env", want: CategoryConfiguration},
		{name: "chore", message: "chore: bump deps", want: CategoryChore},
		{name: "chore upper case", message: "CHORE(deps): bump", want: CategoryChore},
		{name: "other", message: "update readme", want: CategoryOther},
		{name: "other with colon", message: "docs: readme", want: CategoryOther},
		{name: "empty", message: "", want: CategoryOther},
		{name: "leading space is not trimmed", message: " feat: x", want: CategoryOther},
		{name: "prefix must be at the start", message: "refactor: fix later", want: CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message))
		})
	}
}

func TestTypePrefix(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{message: "feat: add login", want: "feat"},
		{message: "feat(ui): a: b", want: "feat(ui)"},
		{message: "no colon here", want: ""},
		{message: ": leading colon", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, TypePrefix(tt.message))
		})
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "strips prefix", message: "feat: add login", want: "add login"},
		{name: "strips only first occurrence", message: "fix: fix: twice", want: "fix: twice"},
		{name: "keeps later colons", message: "config: a: b", want: "a: b"},
		{name: "no colon trims only", message: "  update readme \n", want: "update readme"},
		{name: "empty prefix", message: ": bare", want: "bare"},
		{name: "multi-line body kept", message: "feat: title\n\nbody", want: "title\n\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Description(tt.message))
		})
	}
}

func TestShortSHA(t *testing.T) {
	tests := []struct {
		name   string
		commit Commit
		want   string
	}{
		{
			name:   "from URL",
			commit: Commit{URL: "https://github.com/o/r/commit/0123456789abcdef", SHA: "ffffffffff"},
			want:   "0123456",
		},
		{
			name:   "URL with trailing slash",
			commit: Commit{URL: "https://github.com/o/r/commit/abcdef0123/"},
			want:   "abcdef0",
		},
		{
			name:   "falls back to SHA",
			commit: Commit{SHA: "fedcba9876543210"},
			want:   "fedcba9",
		},
		{
			name:   "short hash kept whole",
			commit: Commit{URL: "https://example.com/commit/abc"},
			want:   "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.commit.ShortSHA())
		})
	}
}

func TestFormatLine(t *testing.T) {
	commit := &Commit{
		URL:        "https://github.com/acme/app/commit/1234567890",
		Message:    "feat: add login ",
		AuthorName: "Jane Doe",
	}

	assert.Equal(t,
		"- ([1234567](https://github.com/acme/app/commit/1234567890)) - <Jane Doe> - add login",
		FormatLine(commit))
}
