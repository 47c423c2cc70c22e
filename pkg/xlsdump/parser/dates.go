package parser

import "strings"

// builtinDateFormats are the built-in number format ids that render dates or times.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// isDateFormat reports whether a number format renders a date or time.
// Custom formats are date formats when they contain a date/time token
// outside quoted literals, escapes and bracketed sections.
func isDateFormat(id int, custom string) bool {
	if builtinDateFormats[id] {
		return true
	}
	if custom == "" {
		return false
	}

	inQuote, inBracket := false, false
	for i := 0; i < len(custom); i++ {
		c := custom[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case inBracket:
			if c == ']' {
				inBracket = false
			}
		case c == '"':
			inQuote = true
		case c == '[':
			// [h], [mm] and [ss] are elapsed-time tokens.
			if end := strings.IndexByte(custom[i:], ']'); end > 1 {
				token := strings.ToLower(custom[i+1 : i+end])
				if strings.Trim(token, "hms") == "" {
					return true
				}
			}
			inBracket = true
		case c == '\\' || c == '_' || c == '*':
			i++
		case strings.IndexByte("dmyhsDMYHS", c) >= 0:
			return true
		}
	}
	return false
}
