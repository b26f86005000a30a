package document

import "regexp"

var dateLeadPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// IsDateLike reports whether a string starts with a YYYY-MM-DD date. Strings
// like this are treated as date-shaped by the index advisor; the serializers
// still render them as plain strings.
func IsDateLike(s string) bool {
	return dateLeadPattern.MatchString(s)
}
