// Package policy decides which role, if any, a request path requires.
// Rules form an ordered list evaluated top to bottom; the first match wins
// and an unmatched request is denied.
package policy

import (
	"strings"

	"github.com/Raulcudris/microservices-fargate-demo/internal/model"
)

type Rule struct {
	// Pattern matches path segments. "*" matches one segment, a trailing
	// "**" matches any remainder.
	Pattern string
	// Method restricts the rule to one HTTP method; empty matches all.
	Method string
	// Role required to pass this rule; empty admits any authenticated
	// caller.
	Role string
	// Public rules pass without a token at all.
	Public bool
}

type Table struct {
	rules []Rule
}

func NewTable(rules ...Rule) *Table {
	return &Table{rules: rules}
}

// Default is the route table used by the checkout deployment: login and
// registration are open, admin paths require the ADMIN role, everything
// else only needs a valid token.
func Default() *Table {
	return NewTable(
		Rule{Pattern: "/users/login", Method: "POST", Public: true},
		Rule{Pattern: "/users/create", Method: "POST", Public: true},
		Rule{Pattern: "/admin/**", Role: model.RoleAdmin},
		Rule{Pattern: "/**"},
	)
}

// Public reports whether the request may pass without a token.
func (t *Table) Public(path, method string) bool {
	rule, ok := t.match(path, method)
	return ok && rule.Public
}

// Authorize checks the caller's role against the first matching rule.
// No matching rule means deny.
func (t *Table) Authorize(path, method, role string) error {
	rule, ok := t.match(path, method)
	if !ok {
		return model.ErrForbidden
	}
	if rule.Public {
		return nil
	}
	if rule.Role != "" && rule.Role != role {
		return model.ErrForbidden
	}
	return nil
}

func (t *Table) match(path, method string) (Rule, bool) {
	for _, rule := range t.rules {
		if rule.Method != "" && rule.Method != method {
			continue
		}
		if matchPattern(rule.Pattern, path) {
			return rule, true
		}
	}
	return Rule{}, false
}

func matchPattern(pattern, path string) bool {
	pat := splitPath(pattern)
	got := splitPath(path)

	for i, seg := range pat {
		if seg == "**" {
			return true
		}
		if i >= len(got) {
			return false
		}
		if seg != "*" && seg != got[i] {
			return false
		}
	}
	return len(pat) == len(got)
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}
