// Package uri maps report locations onto storage backends. A location is
// either a local path or an s3://bucket/key URL.
package uri

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/ReconfigureIO/hlsflow/service/storage"
	"github.com/ReconfigureIO/hlsflow/service/storage/localfile"
	"github.com/ReconfigureIO/hlsflow/service/storage/s3"
)

// Resolve returns the storage service holding location and the key of
// location within it.
func Resolve(location string, conf s3.ServiceConfig) (storage.Service, string, error) {
	if !strings.HasPrefix(location, "s3://") {
		return localfile.Service(filepath.Dir(location)), filepath.Base(location), nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, "", err
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return nil, "", fmt.Errorf("%q is not an s3://bucket/key location", location)
	}
	return s3.New(conf, u.Host), key, nil
}
