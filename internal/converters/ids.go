// Package converters translates between stored and in-memory representations.
package converters

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// NormalizeIDs sorts ids and drops duplicates. It never returns nil.
func NormalizeIDs(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// EncodeIDs serializes an id set as a JSON array for a TEXT column.
func EncodeIDs(ids []int) string {
	data, err := json.Marshal(NormalizeIDs(ids))
	if err != nil {
		// marshaling a []int cannot fail
		return "[]"
	}
	return string(data)
}

// DecodeIDs parses a JSON id array. Empty and NULL values decode to an empty set.
func DecodeIDs(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []int{}, nil
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("failed to decode id list %q: %w", raw, err)
	}
	return NormalizeIDs(ids), nil
}

// ParseIDList parses a comma separated list such as "3,5, 8".
func ParseIDList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid task id %q", strings.TrimSpace(p))
		}
		ids = append(ids, id)
	}
	return NormalizeIDs(ids), nil
}
