package hlsreport

import (
	"strconv"
	"strings"

	"github.com/ReconfigureIO/hlsflow/models"
)

// FromFilename parses the key=value tokens of a build directory name, such
// as "dc=2-p=5.0-da=True". Tokens are separated by '-', except where the
// hyphen is a sign: after an exponent 'e', right after '=', or in front of a
// digit.
func FromFilename(name string) models.Record {
	r := models.Record{}
	for _, part := range splitTokens(name) {
		pos := strings.Index(part, "=")
		if pos == -1 {
			continue
		}
		r[part[:pos]] = parseToken(part[pos+1:])
	}
	return r
}

func splitTokens(name string) []string {
	parts := []string{}
	start := 0
	for i := 0; i < len(name); i++ {
		if name[i] != '-' || isSign(name, i) {
			continue
		}
		parts = append(parts, name[start:i])
		start = i + 1
	}
	return append(parts, name[start:])
}

func isSign(s string, i int) bool {
	if i > 0 && (s[i-1] == 'e' || s[i-1] == '=') {
		return true
	}
	return i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9'
}

func parseToken(v string) interface{} {
	if strings.Contains(v, ".") {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		return v
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return v
}
