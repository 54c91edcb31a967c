package filesystem

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/docfold/docfold/pkg/util"
)

// NameResolver hands out names that do not collide with the names already
// present in one folder, nor with each other.
type NameResolver struct {
	taken       map[string]struct{}
	maxAttempts int
}

// NewNameResolver starts from the names currently in the destination.
func NewNameResolver(existing []string, maxAttempts int) *NameResolver {
	r := &NameResolver{
		taken:       make(map[string]struct{}, len(existing)),
		maxAttempts: maxAttempts,
	}
	for _, name := range existing {
		r.taken[nameKey(name)] = struct{}{}
	}

	return r
}

func nameKey(name string) string {
	return strings.ToLower(name)
}

// Taken reports whether name collides with a known or reserved name.
func (r *NameResolver) Taken(name string) bool {
	_, ok := r.taken[nameKey(name)]
	return ok
}

// Resolve returns proposed when it is free, otherwise the first free
// "base (n)ext" with n counting from 1. The returned name is reserved.
// Folders are numbered after the full name. Base is shortened so the
// candidate stays a valid name length.
func (r *NameResolver) Resolve(proposed string, isFolder bool) (string, error) {
	if !r.Taken(proposed) {
		r.reserve(proposed)
		return proposed, nil
	}

	base, ext := proposed, ""
	if !isFolder {
		base, ext = util.SplitExt(proposed)
	}

	for n := 1; n <= r.maxAttempts; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		trimmed, ok := fitBase(base, len(suffix)+len(ext))
		if !ok {
			return "", ErrNameSpaceExhausted.WithError(fmt.Errorf("no room for a numbered variant of %q", proposed))
		}

		candidate := trimmed + suffix + ext
		if !r.Taken(candidate) {
			r.reserve(candidate)
			return candidate, nil
		}
	}

	return "", ErrNameSpaceExhausted.WithError(fmt.Errorf("%d candidates for %q are all taken", r.maxAttempts, proposed))
}

// fitBase cuts base at a rune boundary so that reserved more bytes still
// fit below MaxFileNameLength.
func fitBase(base string, reserved int) (string, bool) {
	room := MaxFileNameLength - 1 - reserved
	if len(base) <= room {
		return base, len(base) > 0
	}
	if room < 1 {
		return "", false
	}

	cut := room
	for cut > 0 && !utf8.RuneStart(base[cut]) {
		cut--
	}

	return base[:cut], cut > 0
}

func (r *NameResolver) reserve(name string) {
	r.taken[nameKey(name)] = struct{}{}
}
