package hostconfig

import "strings"

// Set replaces key's value in lines, or appends a new key=value line if
// it was absent. The bool result reports whether an existing line was
// replaced.
func Set(lines []string, key, value string) ([]string, bool) {
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		parts := strings.SplitN(trimmed, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != key {
			continue
		}
		lines[i] = key + "=" + value
		return lines, true
	}
	return append(lines, key+"="+value), false
}

// Unset removes key's line from lines, if present.
func Unset(lines []string, key string) ([]string, bool) {
	var out []string
	removed := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			parts := strings.SplitN(trimmed, "=", 2)
			if len(parts) == 2 && strings.TrimSpace(parts[0]) == key {
				removed = true
				continue
			}
		}
		out = append(out, line)
	}
	return out, removed
}

// Parse turns settings lines into a key → value map, skipping blanks and
// comments.
func Parse(lines []string) map[string]string {
	out := make(map[string]string)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		parts := strings.SplitN(trimmed, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out
}
