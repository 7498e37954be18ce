package storage

import "time"

// PutOption configures an upload.
type PutOption func(*putOptions)

type putOptions struct {
	contentType  string
	cacheControl string
}

// WithContentType sets the object Content-Type. Default: application/octet-stream.
func WithContentType(ct string) PutOption {
	return func(o *putOptions) { o.contentType = ct }
}

// WithCacheControl sets the object Cache-Control header.
func WithCacheControl(v string) PutOption {
	return func(o *putOptions) { o.cacheControl = v }
}

// URLOption configures URL generation.
type URLOption func(*urlOptions)

type urlOptions struct {
	expiry      time.Duration
	forceSigned bool
}

// DefaultURLExpiry is the lifetime of pre-signed URLs.
const DefaultURLExpiry = 15 * time.Minute

// WithExpiry sets the pre-signed URL lifetime.
func WithExpiry(d time.Duration) URLOption {
	return func(o *urlOptions) {
		if d > 0 {
			o.expiry = d
		}
	}
}

// WithSigned returns a pre-signed URL even when PublicURL is configured.
func WithSigned() URLOption {
	return func(o *urlOptions) { o.forceSigned = true }
}
