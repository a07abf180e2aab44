package utils

import (
	"strings"
)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanList trims entries and drops empties, preserving order and duplicates.
// Equipment lists are free text; duplicates are the admin's business.
func CleanList(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		item = NormalizeSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
