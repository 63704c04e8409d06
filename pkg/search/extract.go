package search

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

const (
	// maxDepth bounds the value walk well past any natural document depth so
	// a self-referential structure cannot loop the extractor.
	maxDepth = 16

	// maxTitleLen is the stored title cap in runes
	maxTitleLen = 100

	// untitledPlaceholder is used when no usable title value exists
	untitledPlaceholder = "Untitled"
)

// Flatten walks a content item's data depth-first and joins every scalar
// fragment with spaces, lower-cased. Map keys are dropped; locale maps
// contribute their values like any other nested map. Map traversal is by
// sorted key so the output is deterministic.
func Flatten(data map[string]interface{}) string {
	var parts []string
	flattenValue(&parts, data, 0)
	return strings.ToLower(strings.Join(parts, " "))
}

func flattenValue(parts *[]string, value interface{}, depth int) {
	if depth > maxDepth {
		return
	}

	switch v := value.(type) {
	case string:
		if v != "" {
			*parts = append(*parts, v)
		}
	case bool:
		*parts = append(*parts, strconv.FormatBool(v))
	case float64:
		*parts = append(*parts, strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		*parts = append(*parts, strconv.Itoa(v))
	case int64:
		*parts = append(*parts, strconv.FormatInt(v, 10))
	case json.Number:
		*parts = append(*parts, v.String())
	case []interface{}:
		for _, elem := range v {
			flattenValue(parts, elem, depth+1)
		}
	case map[string]interface{}:
		for _, key := range sortedKeys(v) {
			flattenValue(parts, v[key], depth+1)
		}
	}
}

// Title picks a best-effort title from a content item's data: a `title` or
// `name` field when present, otherwise the first field in key order. A plain
// string is used verbatim; a locale map contributes its first value. Anything
// else falls back to "Untitled". The result is capped at 100 runes.
func Title(data map[string]interface{}) string {
	title := ""
	for _, key := range titleCandidates(data) {
		if title = titleValue(data[key]); title != "" {
			break
		}
	}
	if title == "" {
		return untitledPlaceholder
	}
	if runes := []rune(title); len(runes) > maxTitleLen {
		title = string(runes[:maxTitleLen])
	}
	return title
}

func titleCandidates(data map[string]interface{}) []string {
	keys := make([]string, 0, len(data)+2)
	for _, preferred := range []string{"title", "name"} {
		if _, ok := data[preferred]; ok {
			keys = append(keys, preferred)
		}
	}
	return append(keys, sortedKeys(data)...)
}

func titleValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]interface{}:
		// Locale map: take the first locale's value.
		for _, key := range sortedKeys(v) {
			if s, ok := v[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
