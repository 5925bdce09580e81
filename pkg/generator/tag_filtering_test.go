package generator

import (
	"testing"

	"github.com/blimu-dev/typegen/pkg/ir"
)

func TestShouldIncludeOperation(t *testing.T) {
	tests := []struct {
		name         string
		originalTags []string
		includeTags  []string
		excludeTags  []string
		expected     bool
		description  string
	}{
		{
			name:         "no filters - include all",
			originalTags: []string{"users", "internal"},
			includeTags:  []string{},
			excludeTags:  []string{},
			expected:     true,
			description:  "When no filters are specified, all operations should be included",
		},
		{
			name:         "include filter matches first tag",
			originalTags: []string{"users", "internal"},
			includeTags:  []string{"users"},
			excludeTags:  []string{},
			expected:     true,
			description:  "Operation should be included when first tag matches include filter",
		},
		{
			name:         "include filter matches second tag",
			originalTags: []string{"internal", "users"},
			includeTags:  []string{"users"},
			excludeTags:  []string{},
			expected:     true,
			description:  "Operation should be included when any tag matches include filter (this is the main fix)",
		},
		{
			name:         "include filter matches none",
			originalTags: []string{"internal", "admin"},
			includeTags:  []string{"users"},
			excludeTags:  []string{},
			expected:     false,
			description:  "Operation should be excluded when no tags match include filter",
		},
		{
			name:         "exclude filter matches first tag",
			originalTags: []string{"internal", "users"},
			includeTags:  []string{},
			excludeTags:  []string{"internal"},
			expected:     false,
			description:  "Operation should be excluded when any tag matches exclude filter",
		},
		{
			name:         "exclude filter matches second tag",
			originalTags: []string{"users", "internal"},
			includeTags:  []string{},
			excludeTags:  []string{"internal"},
			expected:     false,
			description:  "Operation should be excluded when any tag matches exclude filter",
		},
		{
			name:         "include and exclude both match different tags",
			originalTags: []string{"users", "internal"},
			includeTags:  []string{"users"},
			excludeTags:  []string{"internal"},
			expected:     false,
			description:  "Exclude should take precedence over include",
		},
		{
			name:         "include matches, exclude doesn't",
			originalTags: []string{"users", "public"},
			includeTags:  []string{"users"},
			excludeTags:  []string{"internal"},
			expected:     true,
			description:  "Operation should be included when include matches and exclude doesn't",
		},
		{
			name:         "regex patterns work",
			originalTags: []string{"users_v1", "internal_api"},
			includeTags:  []string{"^users_.*"},
			excludeTags:  []string{".*_api$"},
			expected:     false,
			description:  "Regex patterns should work for both include and exclude",
		},
		{
			name:         "regex include matches",
			originalTags: []string{"users_v1", "public"},
			includeTags:  []string{"^users_.*"},
			excludeTags:  []string{},
			expected:     true,
			description:  "Regex include patterns should work",
		},
		{
			name:         "multiple include patterns - any match",
			originalTags: []string{"orders", "billing"},
			includeTags:  []string{"users", "orders"},
			excludeTags:  []string{},
			expected:     true,
			description:  "Operation should be included if any tag matches any include pattern",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			includeRegexes, excludeRegexes, err := compileTagFilters(test.includeTags, test.excludeTags)
			if err != nil {
				t.Fatalf("compileTagFilters(%v, %v): %v", test.includeTags, test.excludeTags, err)
			}

			result := shouldIncludeOperation(test.originalTags, includeRegexes, excludeRegexes)
			if result != test.expected {
				t.Errorf("shouldIncludeOperation(%v, %v, %v) = %v, expected %v\nDescription: %s",
					test.originalTags, test.includeTags, test.excludeTags, result, test.expected, test.description)
			}
		})
	}
}

func TestFilterTags(t *testing.T) {
	include, exclude, err := compileTagFilters([]string{"^pub"}, []string{"legacy"})
	if err != nil {
		t.Fatal(err)
	}

	result := filterTags([]string{"public", "public-legacy", "admin"}, include, exclude)

	expected := map[string]bool{"public": true, "public-legacy": false, "admin": false}
	for tag, want := range expected {
		if result[tag] != want {
			t.Errorf("filterTags()[%q] = %v, expected %v", tag, result[tag], want)
		}
	}
}

func TestGroupServices(t *testing.T) {
	ops := []ir.IROperation{
		{OperationID: "listUsers", Tag: "users", OriginalTags: []string{"users"}},
		{OperationID: "health", Tag: "misc"},
		{OperationID: "getUser", Tag: "users", OriginalTags: []string{"users", "admin"}},
	}

	services := groupServices(ops)

	if len(services) != 2 || services[0].Tag != "misc" || services[1].Tag != "users" {
		t.Fatalf("expected services misc and users, got %+v", services)
	}
	if got := services[0].Operations[0].OriginalTags; len(got) != 1 || got[0] != "misc" {
		t.Errorf("expected untagged operations to carry the misc tag, got %v", got)
	}
	users := services[1].Operations
	if len(users) != 2 || users[0].OperationID != "listUsers" || users[1].OperationID != "getUser" {
		t.Errorf("expected document order within a service, got %+v", users)
	}
}
