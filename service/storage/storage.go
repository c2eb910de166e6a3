package storage

import (
	"bytes"
	"io"

	"github.com/cenkalti/backoff"
	log "github.com/sirupsen/logrus"
)

// A Service provides a content store for reports.
// It is implemented by service/storage/s3.Service and
// service/storage/localfile.Service.
type Service interface {
	Upload(key string, r io.Reader) (string, error)
	Download(key string) (io.ReadCloser, error)
}

// MaxUploadRetries bounds the attempts UploadWithRetry makes after the
// first one.
const MaxUploadRetries = 3

var uploadBackOff = func() backoff.BackOff {
	return backoff.NewExponentialBackOff()
}

// UploadWithRetry uploads data under key, retrying with exponential backoff.
func UploadWithRetry(s Service, key string, data []byte) (string, error) {
	var location string
	op := func() (err error) {
		location, err = s.Upload(key, bytes.NewReader(data))
		if err != nil {
			log.WithFields(log.Fields{"key": key}).Warnf("upload failed: %v", err)
		}
		return err
	}
	b := backoff.WithMaxRetries(uploadBackOff(), MaxUploadRetries)
	if err := backoff.Retry(op, b); err != nil {
		return "", err
	}
	return location, nil
}
