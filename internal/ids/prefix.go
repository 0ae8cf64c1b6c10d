package ids

import "strings"

// NormalizeUniqueIDs lowercases IDs and drops blanks and duplicates,
// keeping first-seen order.
func NormalizeUniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		idLower := strings.ToLower(id)
		if idLower == "" || seen[idLower] {
			continue
		}
		seen[idLower] = true
		out = append(out, idLower)
	}
	return out
}

// MatchPrefixNormalized finds the ID in normalized IDs that starts with prefix.
// An exact match wins over longer IDs sharing the prefix.
func MatchPrefixNormalized(ids []string, prefix string) (match string, found, ambiguous bool) {
	prefix = strings.ToLower(prefix)
	for _, id := range ids {
		if id == prefix {
			return id, true, false
		}
	}
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if found {
			return "", true, true
		}
		match, found = id, true
	}
	return match, found, false
}

// UniquePrefixLengthsNormalized returns the shortest unique prefix length
// for each ID. The IDs must have been through NormalizeUniqueIDs.
func UniquePrefixLengthsNormalized(ids []string) map[string]int {
	lengths := make(map[string]int, len(ids))
	for _, id := range ids {
		lengths[id] = uniquePrefixLength(id, ids)
	}
	return lengths
}

func uniquePrefixLength(id string, ids []string) int {
	for length := 1; length <= len(id); length++ {
		prefix := id[:length]
		unique := true
		for _, other := range ids {
			if other == id {
				continue
			}
			if strings.HasPrefix(other, prefix) {
				unique = false
				break
			}
		}
		if unique {
			return length
		}
	}

	return len(id)
}
