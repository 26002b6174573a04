package service

import (
	"strings"

	"golang.org/x/text/cases"
)

// Option is one dropdown entry
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var folder = cases.Fold()

// matches reports whether name contains query, ignoring case. An empty
// query matches everything.
func matches(name, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	return strings.Contains(folder.String(name), folder.String(query))
}
