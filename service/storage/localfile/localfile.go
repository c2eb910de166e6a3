// Package localfile stores reports in a local directory.
package localfile

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
)

// Service is the directory reports are stored in.
type Service string

// Upload writes r to the file key and returns its path. The file is
// replaced only once r has been fully written, so an interrupted upload
// leaves any previous report in place.
func (s Service) Upload(key string, r io.Reader) (string, error) {
	dir := string(s)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp, err := ioutil.TempFile(dir, "."+key+".")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}

	path := filepath.Join(dir, key)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}

// Download opens the file key.
func (s Service) Download(key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(string(s), key))
}
