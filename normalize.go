package texmat

import (
	"path/filepath"
	"strings"
)

// vendorTokens are library, engine, UDIM and resolution tags removed before matching.
var vendorTokens = []string{
	"udim", "1001", "1002", "1003",
	"16k", "1k", "2k", "4k", "8k", "1024", "2048", "4096", "8192",
	"ue4", "ue5", "unity", "marmoset",
	"quixel", "megascans", "arroway", "cgaxis", "ambientcg", "polyhaven", "texturehaven", "cc0",
}

// nameSeparators are dropped from file names.
const nameSeparators = " -_."

// Normalize canonicalizes a file name for keyword matching.
//
// The extension is stripped, the name is lower-cased, separators are removed
// and vendor/resolution tokens are deleted until none remain, so
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))

	s := strings.Map(func(r rune) rune {
		if strings.ContainsRune(nameSeparators, r) {
			return -1
		}
		return r
	}, strings.ToLower(base))

	// Removing one token can join two halves into another token ("1u1001dim").
	for {
		prev := s
		for _, t := range vendorTokens {
			s = strings.ReplaceAll(s, t, "")
		}
		s = strings.ReplaceAll(s, "basecolour", "basecolor")
		if s == prev {
			return s
		}
	}
}
