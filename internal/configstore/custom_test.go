package configstore

import "testing"

func TestExtractCustomSections(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "empty content",
			content: "",
			want:    "",
		},
		{
			name:    "no marker",
			content: "# Title\n\nSome generated text.\n\n## Guidance\n\nDo things.\n",
			want:    "",
		},
		{
			name:    "marker runs to end of content",
			content: "# Title\n\n## Project-Specific\n\nUse the staging database.\n",
			want:    "## Project-Specific\n\nUse the staging database.",
		},
		{
			name:    "marker terminated by next heading",
			content: "# Title\n\n## Custom Rules\n\nNever force-push.\n\n## Guidance\n\nGenerated text.\n",
			want:    "## Custom Rules\n\nNever force-push.",
		},
		{
			name:    "level-one heading also terminates",
			content: "## Local Notes\nnote body\n# Appendix\nmore\n",
			want:    "## Local Notes\nnote body",
		},
		{
			name:    "multiple markers joined by blank line",
			content: "# Title\n\n## Project-Specific\nalpha\n\n## Guidance\ngenerated\n\n## Custom Rules\nbeta\n",
			want:    "## Project-Specific\nalpha\n\n## Custom Rules\nbeta",
		},
		{
			name:    "adjacent markers",
			content: "## Project-Specific\nalpha\n## Custom Rules\nbeta\n",
			want:    "## Project-Specific\nalpha\n\n## Custom Rules\nbeta",
		},
		{
			name:    "deeper headings do not terminate",
			content: "## Team Conventions\n\n### Branch names\nuse kebab-case\n",
			want:    "## Team Conventions\n\n### Branch names\nuse kebab-case",
		},
		{
			name:    "marker with trailing whitespace",
			content: "## Project-Specific  \nbody\n",
			want:    "## Project-Specific  \nbody",
		},
		{
			name:    "similar heading is not a marker",
			content: "## Project-Specific Rules\nbody\n",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCustomSections(tt.content)
			if got != tt.want {
				t.Errorf("ExtractCustomSections() = %q, want %q", got, tt.want)
			}
		})
	}
}
