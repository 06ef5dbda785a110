// Package regexcache caches compiled regular expressions so the same
// pattern is never compiled twice. Scope configurations repeat include and
// exclude patterns across load, validation and materialization passes, and
// compilation is the expensive step.
package regexcache

import (
	"regexp"
	"sync"
)

// cache maps pattern strings to their compiled form. sync.Map keeps reads
// lock-free on the hot path.
var cache sync.Map

// Get returns the compiled form of pattern, compiling and caching it on
// first use. Invalid patterns are not cached.
func Get(pattern string) (*regexp.Regexp, error) {
	if cached, ok := cache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	actual, _ := cache.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

// MustGet is Get for patterns known valid at compile time. It panics on a
// bad pattern.
func MustGet(pattern string) *regexp.Regexp {
	re, err := Get(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Validate reports whether pattern is valid regex syntax, caching the
// compiled form as a side effect when it is. The returned error carries the
// underlying syntax complaint.
func Validate(pattern string) error {
	_, err := Get(pattern)
	return err
}

// Clear drops all cached expressions. Intended for tests.
func Clear() {
	cache.Range(func(key, _ any) bool {
		cache.Delete(key)
		return true
	})
}

// Size returns the number of cached expressions.
func Size() int {
	n := 0
	cache.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
