package format

import (
	"regexp"
	"strings"
)

var (
	boldRe      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	underItalRe = regexp.MustCompile(`_(.*?)_`)
	starItalRe  = regexp.MustCompile(`\*([^*]+)\*`)
	brRe        = regexp.MustCompile(`<br\s*/?>`)
	tagRe       = regexp.MustCompile(`<[^<]+?>`)
)

// Split breaks text into chunks of at most max runes, preferring
// paragraph, then sentence, then word boundaries. Chunks are contiguous
// substrings of the input, so concatenating them reproduces it exactly,
// and cuts never land inside a multi-byte character.
func Split(text string, max int) []string {
	if max < 1 {
		max = 1
	}

	runes := []rune(text)
	if len(runes) <= max {
		return []string{text}
	}

	var parts []string
	for len(runes) > max {
		cut := splitPoint(runes, max)
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

// splitPoint picks where to cut a chunk of at most max runes,
// falling back from paragraph to sentence to word boundaries when the
// better break would leave the chunk too short.
func splitPoint(runes []rune, max int) int {
	window := runes[:max]

	if i := lastParagraphBreak(window); i >= 0 && i >= max-400 {
		return i
	}
	if i := lastSentenceEnd(window); i >= 0 && i >= max-200 {
		return i
	}
	if i := lastSpace(window); i >= 0 && i >= max-300 {
		return i
	}
	return max
}

// lastParagraphBreak returns the cut position just after the last blank
// line in window, or -1
func lastParagraphBreak(window []rune) int {
	for i := len(window) - 2; i >= 0; i-- {
		if window[i] == '\n' && window[i+1] == '\n' {
			return i + 2
		}
	}
	return -1
}

// lastSentenceEnd returns the cut position just after the last
// sentence-ending punctuation in window, or -1
func lastSentenceEnd(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		switch window[i] {
		case '.', '!', '?':
			return i + 1
		}
	}
	return -1
}

// lastSpace returns the cut position just after the last whitespace in
// window, or -1
func lastSpace(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == ' ' || window[i] == '\n' || window[i] == '\t' {
			return i + 1
		}
	}
	return -1
}

var (
	sentenceEndRe  = regexp.MustCompile(`[.!?]\s*$`)
	continuationRe = regexp.MustCompile(`^[a-z,;:]`)
)

// Combine joins consecutive message fragments that look like parts of
// one text: a fragment without closing punctuation, or one followed by
// a lowercase continuation, is glued to its neighbor; otherwise the
// fragments are kept as separate paragraphs.
func Combine(fragments []string) string {
	if len(fragments) == 0 {
		return ""
	}

	combined := fragments[0]
	for i := 1; i < len(fragments); i++ {
		prev := fragments[i-1]
		curr := fragments[i]

		endsWithPunct := sentenceEndRe.MatchString(prev)
		startsLowercase := continuationRe.MatchString(curr)

		switch {
		case !endsWithPunct || startsLowercase:
			if strings.HasSuffix(strings.TrimSpace(prev), "-") {
				combined = strings.TrimRight(combined, "-") + curr
			} else {
				combined += " " + curr
			}
		default:
			combined += "\n\n" + curr
		}
	}
	return combined
}

// MarkdownToHTML converts common markdown the model may emit, despite
// instructions, into the limited HTML subset Telegram accepts.
func MarkdownToHTML(text string) string {
	text = boldRe.ReplaceAllString(text, "<b>$1</b>")
	text = underItalRe.ReplaceAllString(text, "<i>$1</i>")
	text = starItalRe.ReplaceAllString(text, "<i>$1</i>")

	// Telegram has no <br>; newlines only
	text = brRe.ReplaceAllString(text, "\n")
	text = strings.ReplaceAll(text, "  \n", "\n")

	return text
}

// StripTags removes HTML tags, leaving plain text for length checks and
// copyable blocks
func StripTags(text string) string {
	return tagRe.ReplaceAllString(text, "")
}
