// Package strings holds small slice and path helpers
package strings

import std "strings"

// IfEmpty returns def when in is empty
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s trimmed, panicking with what when it is blank
func MustString(s, what string) string {
	s = std.TrimSpace(s)
	if s == "" {
		panic(what + " is required")
	}
	return s
}

// MustPrefix normalizes a mount path to one leading slash and no trailing slash
// it panics on an empty or root path
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// JoinPath joins path segments with single slashes
func JoinPath(parts ...string) string {
	var b std.Builder
	for _, p := range parts {
		p = std.Trim(p, "/")
		if p == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(p)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}
