// Package email normalizes and validates the email addresses collected on club-creation
// requests (one contact address plus a list of officer addresses).
package email

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidContact is returned when the contact address is empty or fails validation.
var ErrInvalidContact = errors.New("email: invalid contact address")

// addressPattern is deliberately permissive: nonspace@nonspace.nonspace. Real deliverability
// is the email worker's problem, not this layer's.
var addressPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Normalize trims and lower-cases raw and validates it against the permissive address
// pattern. Returns "" on any failure; it never returns an error.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if !addressPattern.MatchString(s) {
		return ""
	}
	return s
}

// NormalizeList normalizes every entry, drops invalid results, drops any entry equal to
// the (normalized) excluded contact address, and deduplicates case-insensitively while
// preserving first-seen order. excludeContact may be empty.
func NormalizeList(list []string, excludeContact string) []string {
	contact := Normalize(excludeContact)
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, raw := range list {
		addr := Normalize(raw)
		if addr == "" || addr == contact || seen[addr] {
			continue
		}
		seen[addr] = true
		out = append(out, addr)
	}
	return out
}

// NormalizeContactAndOfficers normalizes the contact address, then the officer list with
// the contact excluded. Returns ErrInvalidContact when the contact is empty or invalid.
func NormalizeContactAndOfficers(contact string, officers []string) (string, []string, error) {
	c := Normalize(contact)
	if c == "" {
		return "", nil, ErrInvalidContact
	}
	return c, NormalizeList(officers, c), nil
}
