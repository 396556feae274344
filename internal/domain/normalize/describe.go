package normalize

import (
	"strings"
	"unicode"
)

// boilerplatePrefixes are issuer-added prefixes stripped case-insensitively
// from the front of a description.
var boilerplatePrefixes = []string{
	"POS DEBIT - ",
	"POS DEBIT ",
	"POS PURCHASE - ",
	"DEBIT CARD PURCHASE - ",
	"RECURRING PAYMENT - ",
	"ACH DEBIT - ",
	"ACH CREDIT - ",
	"ELECTRONIC PAYMENT - ",
	"CHECKCARD ",
	"WEB PMT - ",
}

// suffixMarkers introduce trailing reference/confirmation noise. Everything
// from the marker onward is dropped.
var suffixMarkers = []string{
	" REF #",
	" REF#",
	" REF ",
	" CONF #",
	" CONF#",
	" CONFIRMATION#",
	" TRACE #",
	" ID:",
	" TRANSACTION#",
}

// paymentKeywords / transferKeywords drive the heuristic flags. Membership
// is case-insensitive against the cleaned description.
var paymentKeywords = []string{"payment", "pymt", "thank you", "autopay", "bill pay"}

var transferKeywords = []string{"transfer", "xfer", "allocate", "allocation"}

// CleanDescription trims, collapses whitespace, strips wrapping quotes and
// trailing punctuation, then removes issuer boilerplate prefixes and
// reference suffixes. The raw form is kept elsewhere; this is the working
// form rules and signatures see.
func CleanDescription(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Join(strings.Fields(s), " ")

	// wrapping quotes
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		break
	}

	s = strings.TrimRightFunc(s, func(r rune) bool {
		return r == '.' || r == ',' || r == ';' || r == '-' || r == ' '
	})

	upper := strings.ToUpper(s)
	for _, prefix := range boilerplatePrefixes {
		if strings.HasPrefix(upper, prefix) {
			s = strings.TrimSpace(s[len(prefix):])
			upper = strings.ToUpper(s)
		}
	}

	for _, marker := range suffixMarkers {
		if idx := strings.Index(upper, marker); idx > 0 {
			s = strings.TrimSpace(s[:idx])
			upper = strings.ToUpper(s)
		}
	}

	return s
}

// TitleCase produces the display form: each word gets an upper-case first
// letter with the remainder lowered. Words without letters ("#123") pass
// through untouched.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		seenLetter := false
		for j, r := range runes {
			if !unicode.IsLetter(r) {
				continue
			}
			if !seenLetter {
				runes[j] = unicode.ToUpper(r)
				seenLetter = true
			} else {
				runes[j] = unicode.ToLower(r)
			}
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func containsAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
