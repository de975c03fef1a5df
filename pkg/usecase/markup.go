package usecase

import (
	"strconv"
	"strings"

	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
)

const (
	widthAnchor       = "width:"
	heightAnchor      = "height:"
	compositionAnchor = "AdobeAn.getComposition"

	// dimensionWindow is how many characters after the anchor are inspected. The
	// exporter writes `width:300px;` so the digits always fall inside it. Extra
	// whitespace or a 5+ digit value silently degrades the result (possibly to 0).
	dimensionWindow = 10
)

// ExtractMarkup pulls the stage dimensions and composition binding out of an exported
// document. It never fails: missing anchors yield 0 or an empty string.
func ExtractMarkup(content string) model.Markup {
	return model.Markup{
		Width:              extractDimension(content, widthAnchor),
		Height:             extractDimension(content, heightAnchor),
		CompositionBinding: extractCompositionBinding(content),
	}
}

// extractDimension keeps the ASCII digits found in the window after the first anchor.
func extractDimension(content, anchor string) int {
	idx := strings.Index(content, anchor)
	if idx < 0 {
		return 0
	}

	window := []rune(content[idx+len(anchor):])
	if len(window) > dimensionWindow {
		window = window[:dimensionWindow]
	}

	var digits strings.Builder
	for _, r := range window {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

// extractCompositionBinding returns the first line mentioning AdobeAn.getComposition,
// untrimmed.
func extractCompositionBinding(content string) string {
	for _, line := range strings.FieldsFunc(content, isLineBreak) {
		if strings.Contains(line, compositionAnchor) {
			return line
		}
	}
	return ""
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\v', '\f', '\r', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
