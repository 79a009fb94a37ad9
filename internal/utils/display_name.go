package utils

import (
	"strings"
	"unicode"
)

// EmailToDisplayName derives a display name from the local part of an email:
// "jane.doe+news@example.com" becomes "Jane Doe".
func EmailToDisplayName(email string) string {
	local := email
	if at := strings.LastIndex(email, "@"); at >= 0 {
		local = email[:at]
	}
	if plus := strings.Index(local, "+"); plus >= 0 {
		local = local[:plus]
	}

	words := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || unicode.IsSpace(r)
	})
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	if len(words) == 0 {
		return email
	}
	return strings.Join(words, " ")
}
