package ingestion

import (
	"regexp"
	"strings"
)

var (
	innerSpaceRe = regexp.MustCompile(`\s+`)
	blankRunRe   = regexp.MustCompile(`\n\n\n+`)
)

// bulletMarkers are the list markers postings use. They all normalize to
// "- " so downstream parsing sees one bullet style.
var bulletMarkers = []string{"- ", "* ", "• ", "· ", "▪ ", "‣ "}

// CleanText normalizes posting text while keeping its structure: headings
// and bullet lists survive, line endings become LF, runs of spaces collapse,
// and blank-line runs shrink to at most two.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRunRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")

	// Markdown headings keep their marker and lose their indent.
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Bullets keep their indent but share one marker.
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(trimmed, marker) {
			indent := strings.Repeat(" ", len(line)-len(trimmed))
			item := strings.TrimSpace(strings.TrimPrefix(trimmed, marker))
			item = innerSpaceRe.ReplaceAllString(item, " ")
			return indent + "- " + item
		}
	}

	indent := strings.Repeat(" ", len(line)-len(trimmed))
	return indent + innerSpaceRe.ReplaceAllString(strings.TrimSpace(line), " ")
}

// isBulletLine reports whether a cleaned line is a list item.
func isBulletLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "- ")
}
