package utils

import "strings"

const markdownSpecials = "_*[]()~`>#+-=|{}.!"

// EscapeMarkdown escapes MarkdownV2 control characters in user-originated
// text before it is embedded in a formatted view.
func EscapeMarkdown(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(markdownSpecials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
