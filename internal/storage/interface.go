package storage

import (
	"context"
	"io"
	"strings"
	"time"
)

// Scheme is the signed-storage scheme for audio references. A ref of the form
// s3://<bucket>/<object-path> must be resolved to a short-lived signed URL
// before it can be fetched.
const Scheme = "s3"

type Storage interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Upload(ctx context.Context, key string, data io.Reader) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	SignedURL(bucket, key string, expires time.Duration) (string, error)
	Ref(key string) string
}

// ParseRef splits a signed-storage reference into bucket and object path.
// Returns ok=false for plain paths and http(s) URLs.
func ParseRef(ref string) (bucket, key string, ok bool) {
	prefix := Scheme + "://"
	if !strings.HasPrefix(ref, prefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(ref, prefix)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// MakeRef builds a signed-storage reference for an object.
func MakeRef(bucket, key string) string {
	return Scheme + "://" + bucket + "/" + key
}
