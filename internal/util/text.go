package util

import (
	"regexp"
	"strings"
)

var codeFenceRegex = regexp.MustCompile("```(?:json)?")

// StripCodeFence removes the markdown code-fence markers language models tend
// to wrap JSON payloads in, plus surrounding backticks and whitespace.
func StripCodeFence(s string) string {
	return strings.Trim(codeFenceRegex.ReplaceAllString(s, ""), "`\n ")
}
