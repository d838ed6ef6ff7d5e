package configstore

import (
	"regexp"
	"strings"
)

// CustomSectionMarkers are the headings that delimit user-authored blocks
// inside generated component files. Content under a marker survives
// regeneration.
var CustomSectionMarkers = []string{
	"## Project-Specific",
	"## Custom Rules",
	"## Team Conventions",
	"## Local Notes",
}

// headingPattern matches a level-1 or level-2 markdown heading line, which
// terminates a custom section capture.
var headingPattern = regexp.MustCompile(`^#{1,2}\s`)

// ExtractCustomSections returns the user-authored blocks found in content.
// Each block starts at a marker heading line and ends immediately before the
// next level-1/level-2 heading, or at end of content. Multiple blocks are
// joined in document order by a single blank line. Returns the empty string
// when no marker is present.
func ExtractCustomSections(content string) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	var blocks []string

	for i := 0; i < len(lines); i++ {
		if !isMarkerLine(lines[i]) {
			continue
		}

		end := i + 1
		for end < len(lines) && !headingPattern.MatchString(lines[end]) {
			end++
		}

		block := strings.TrimRight(strings.Join(lines[i:end], "\n"), "\n")
		blocks = append(blocks, block)

		// Resume after the captured block; the terminating heading may
		// itself be another marker.
		i = end - 1
	}

	return strings.Join(blocks, "\n\n")
}

func isMarkerLine(line string) bool {
	trimmed := strings.TrimRight(line, " \t")
	for _, marker := range CustomSectionMarkers {
		if trimmed == marker {
			return true
		}
	}
	return false
}
