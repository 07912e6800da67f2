// Package phone normalizes Philippine mobile numbers to the local 0XXXXXXXXXX form.
package phone

import "strings"

var stripper = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\t", "")

func Normalize(raw string) string {
	s := stripper.Replace(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(s, "+63"):
		return "0" + s[3:]
	case strings.HasPrefix(s, "63") && len(s) > 2:
		return "0" + s[2:]
	case strings.HasPrefix(s, "9") && len(s) == 10:
		return "0" + s
	}
	return s
}
