// Package config reads service settings from namespaced environment variables
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"hranalytics/internal/platform/logger"
)

// Conf is a prefixed view over the environment, eg Prefix("HRA_API_")
type Conf struct{ prefix string }

// New returns the unprefixed root view
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) key(k string) string { return c.prefix + k }

// lookup returns the full key and its trimmed value
func (c Conf) lookup(k string) (string, string) {
	full := c.key(k)
	return full, strings.TrimSpace(os.Getenv(full))
}

// must returns the value or panics when it is blank
func (c Conf) must(k string) (string, string) {
	full, v := c.lookup(k)
	if v == "" {
		logger.Get().Panic().Str("key", full).Msg("missing required env")
	}
	return full, v
}

// mayParse parses an optional value, a bad value is logged and def is used
func mayParse[T any](c Conf, k string, def T, kind string, parse func(string) (T, error)) T {
	full, s := c.lookup(k)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", full).Str("value", s).Interface("default", def).
			Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

// MustString panics when key is missing or blank
func (c Conf) MustString(key string) string {
	_, v := c.must(key)
	return v
}

// MustInt panics when key is missing or not an int
func (c Conf) MustInt(key string) int {
	full, s := c.must(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Panic().Str("key", full).Str("value", s).Msg("invalid int value")
	}
	return v
}

// MustPort returns a listen addr like ":4000" for a port in 1..65535
func (c Conf) MustPort(key string) string {
	full, s := c.must(key)
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		logger.Get().Panic().Str("key", full).Str("value", s).Msg("invalid TCP port; expected 1..65535")
	}
	return ":" + s
}

// Require panics on the first blank key
func (c Conf) Require(keys ...string) {
	for _, k := range keys {
		c.must(k)
	}
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string {
	if _, v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def, invalid values are logged
func (c Conf) MayInt(key string, def int) int {
	return mayParse(c, key, def, "int", strconv.Atoi)
}

// MayBool returns the value or def, invalid values are logged
func (c Conf) MayBool(key string, def bool) bool {
	return mayParse(c, key, def, "bool", strconv.ParseBool)
}

// MayDuration returns the value or def, invalid values are logged
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return mayParse(c, key, def, "duration", time.ParseDuration)
}

// MayCSV splits a comma list, dropping blanks; def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	_, s := c.lookup(key)
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns the value lower-cased when it is one of allowed, def when blank
// anything else panics since a typo in a selector should stop boot
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return v
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
