// Package textutil provides the field splitting used by the LOSM line parsers.
//
// The LOSM formats are comma-delimited with insignificant spaces around each
// field. Only the ASCII space character counts as padding; tabs and other
// whitespace are left in place and will usually cause a later conversion
// error, which is how the format has always behaved.
package textutil

import "strings"

// TrimWhitespace removes leading and trailing ASCII spaces from s.
// A string made only of spaces trims to "".
func TrimWhitespace(s string) string {
	return strings.Trim(s, " ")
}

// SplitFields splits line on commas, trims each piece, and drops pieces that
// are empty after trimming.
//
// This is not a positional split: "1, 2,,3" yields ["1" "2" "3"], so a row
// with a blank column looks one field short to the caller.
func SplitFields(line string) []string {
	parts := strings.Split(line, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = TrimWhitespace(p); p != "" {
			fields = append(fields, p)
		}
	}
	return fields
}
