package localfile

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gotestyourself/gotestyourself/assert"
	"github.com/gotestyourself/gotestyourself/fs"
)

func TestUploadDownload(t *testing.T) {
	dir := fs.NewDir(t, "reports")
	defer dir.Remove()
	s := Service(filepath.Join(dir.Path(), "nested"))

	path, err := s.Upload("summary.csv", strings.NewReader("LUT\n10\n"))
	assert.NilError(t, err)
	assert.Equal(t, path, filepath.Join(dir.Path(), "nested", "summary.csv"))

	rc, err := s.Download("summary.csv")
	assert.NilError(t, err)
	defer rc.Close()
	data, err := ioutil.ReadAll(rc)
	assert.NilError(t, err)
	assert.Equal(t, string(data), "LUT\n10\n")
}

func TestDownloadMissing(t *testing.T) {
	dir := fs.NewDir(t, "reports")
	defer dir.Remove()

	_, err := Service(dir.Path()).Download("nope.json")
	assert.Assert(t, err != nil)
}

func TestUploadReplaces(t *testing.T) {
	dir := fs.NewDir(t, "reports", fs.WithFile("summary.md", "old"))
	defer dir.Remove()
	s := Service(dir.Path())

	_, err := s.Upload("summary.md", strings.NewReader("new"))
	assert.NilError(t, err)

	files, err := ioutil.ReadDir(dir.Path())
	assert.NilError(t, err)
	assert.Equal(t, len(files), 1)
	assert.Equal(t, files[0].Mode().Perm(), os.FileMode(0644))

	rc, err := s.Download("summary.md")
	assert.NilError(t, err)
	defer rc.Close()
	data, err := ioutil.ReadAll(rc)
	assert.NilError(t, err)
	assert.Equal(t, string(data), "new")
}
