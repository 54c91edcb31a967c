package filesystem

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNameResolver_Resolve(t *testing.T) {
	asserts := assert.New(t)

	// free name is kept
	{
		r := NewNameResolver([]string{"B"}, 10)
		name, err := r.Resolve("A", true)
		asserts.NoError(err)
		asserts.Equal("A", name)
		asserts.True(r.Taken("a"))
	}

	// folder gets numbered after the full name
	{
		r := NewNameResolver([]string{"A", "A (1)"}, 10)
		name, err := r.Resolve("A", true)
		asserts.NoError(err)
		asserts.Equal("A (2)", name)
	}

	// file keeps its extension last
	{
		r := NewNameResolver([]string{"report.pdf"}, 10)
		name, err := r.Resolve("report.pdf", false)
		asserts.NoError(err)
		asserts.Equal("report (1).pdf", name)
	}

	// folder names containing a dot are not split
	{
		r := NewNameResolver([]string{"v1.2"}, 10)
		name, err := r.Resolve("v1.2", true)
		asserts.NoError(err)
		asserts.Equal("v1.2 (1)", name)
	}

	// dot files have no extension
	{
		r := NewNameResolver([]string{".env"}, 10)
		name, err := r.Resolve(".env", false)
		asserts.NoError(err)
		asserts.Equal(".env (1)", name)
	}

	// collisions ignore case
	{
		r := NewNameResolver([]string{"readme.MD"}, 10)
		name, err := r.Resolve("README.md", false)
		asserts.NoError(err)
		asserts.Equal("README (1).md", name)
	}

	// exhausted
	{
		r := NewNameResolver([]string{"A", "A (1)", "A (2)"}, 2)
		name, err := r.Resolve("A", true)
		asserts.Empty(name)
		asserts.True(errors.Is(err, ErrNameSpaceExhausted))
	}
}

func TestNameResolver_Distinct(t *testing.T) {
	asserts := assert.New(t)
	r := NewNameResolver([]string{"doc.txt", "doc (2).txt"}, 999)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		name, err := r.Resolve("doc.txt", false)
		asserts.NoError(err)
		key := strings.ToLower(name)
		asserts.False(seen[key], fmt.Sprintf("%s handed out twice", name))
		seen[key] = true
	}

	asserts.False(seen["doc.txt"])
	asserts.False(seen["doc (2).txt"])
	asserts.True(seen["doc (1).txt"])
	asserts.True(seen["doc (3).txt"])
}

func TestNameResolver_LongNames(t *testing.T) {
	asserts := assert.New(t)

	// longest valid file name keeps its extension
	{
		long := strings.Repeat("x", 251) + ".txt"
		r := NewNameResolver([]string{long}, 10)
		name, err := r.Resolve(long, false)
		asserts.NoError(err)
		asserts.Len(name, MaxFileNameLength-1)
		asserts.True(strings.HasSuffix(name, "x (1).txt"))
		asserts.NoError(validateName(name))

		name, err = r.Resolve(long, false)
		asserts.NoError(err)
		asserts.True(strings.HasSuffix(name, "x (2).txt"))
		asserts.NoError(validateName(name))
	}

	// longest valid folder name
	{
		long := strings.Repeat("d", 255)
		r := NewNameResolver([]string{long}, 10)
		name, err := r.Resolve(long, true)
		asserts.NoError(err)
		asserts.Equal(strings.Repeat("d", 251)+" (1)", name)
		asserts.NoError(validateName(name))
	}

	// multi-byte names are cut at a rune boundary
	{
		long := strings.Repeat("é", 125) + ".txt"
		r := NewNameResolver([]string{long}, 10)
		name, err := r.Resolve(long, false)
		asserts.NoError(err)
		asserts.True(utf8.ValidString(name))
		asserts.Equal(strings.Repeat("é", 123)+" (1).txt", name)
		asserts.NoError(validateName(name))
	}

	// no room left beside the extension
	{
		long := "a." + strings.Repeat("e", 253)
		r := NewNameResolver([]string{long}, 10)
		name, err := r.Resolve(long, false)
		asserts.Empty(name)
		asserts.True(errors.Is(err, ErrNameSpaceExhausted))
	}
}
