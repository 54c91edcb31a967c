package util

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExists(t *testing.T) {
	asserts := assert.New(t)
	asserts.True(Exists("io.go"))
	asserts.False(Exists("io.js"))
}

func TestCreatNestedFile(t *testing.T) {
	asserts := assert.New(t)
	defer os.RemoveAll("test")

	file, err := CreatNestedFile("test/nest.txt")
	asserts.NoError(err)
	asserts.NoError(file.Close())
	asserts.FileExists("test/nest.txt")
}

func TestReplace(t *testing.T) {
	asserts := assert.New(t)
	asserts.Equal("a=1", Replace(map[string]string{"{v}": "1"}, "a={v}"))
}

func TestSplitExt(t *testing.T) {
	asserts := assert.New(t)

	testCases := []struct {
		name, base, ext string
	}{
		{"report.pdf", "report", ".pdf"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"README", "README", ""},
		{".bashrc", ".bashrc", ""},
		{"trailing.", "trailing", "."},
	}

	for _, tc := range testCases {
		base, ext := SplitExt(tc.name)
		asserts.Equal(tc.base, base, tc.name)
		asserts.Equal(tc.ext, ext, tc.name)
	}
}

func TestLog(t *testing.T) {
	asserts := assert.New(t)
	asserts.NotNil(Log())
	BuildLogger("warning")
	asserts.NotNil(Log())
}
