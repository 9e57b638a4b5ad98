package logx

import (
	"regexp"
)

// Masker hides secrets in dumped HTTP traffic before it reaches the log.
type Masker interface {
	Mask(input []byte) []byte
}

//nolint:gochecknoglobals
var defaultSensitivePatterns = []*regexp.Regexp{
	// Caller identity in request dumps.
	regexp.MustCompile("(?s)(Authorization: Bearer ).+?(\r)"),
	// Bot API tokens are part of the request path.
	regexp.MustCompile(`(/bot)\d+:[A-Za-z0-9_-]+(/)`),
	// Passwords in postgres and redis DSNs.
	regexp.MustCompile(`(://[^:/@\s]+:)[^@\s/"]+(@)`),
	// JSON fields.
	regexp.MustCompile(`(?s)("(?:[Pp]assword|[A-Za-z]*[Tt]oken)":\s?").+?(")`),
}

// SensitiveDataMasker replaces every match of its patterns with [MASKED],
// keeping the first and second capture groups around it.
type SensitiveDataMasker struct {
	patterns []*regexp.Regexp
}

// NewSensitiveDataMasker masks the default patterns plus extra ones.
func NewSensitiveDataMasker(extra ...*regexp.Regexp) SensitiveDataMasker {
	patterns := make([]*regexp.Regexp, 0, len(defaultSensitivePatterns)+len(extra))
	patterns = append(patterns, defaultSensitivePatterns...)
	patterns = append(patterns, extra...)

	return SensitiveDataMasker{patterns: patterns}
}

func (s SensitiveDataMasker) Mask(input []byte) []byte {
	for _, pattern := range s.patterns {
		input = pattern.ReplaceAll(input, []byte("${1}[MASKED]${2}"))
	}

	return input
}

// NopSensitiveDataMasker leaves input untouched.
type NopSensitiveDataMasker struct{}

func (NopSensitiveDataMasker) Mask(input []byte) []byte {
	return input
}
