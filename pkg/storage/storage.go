package storage

import (
	"context"
	"io"
	"time"
)

// Storage is the subset of object storage the content pipeline needs.
type Storage interface {
	// Get returns the object body. The caller closes it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Put(ctx context.Context, key string, r io.Reader, opts ...PutOption) error
	// List returns every object under prefix, following pagination.
	List(ctx context.Context, prefix string) ([]Object, error)
	URL(ctx context.Context, key string, opts ...URLOption) (string, error)
}

// Config holds S3-compatible storage settings.
type Config struct {
	Bucket    string `koanf:"bucket"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	// Endpoint overrides the AWS endpoint, e.g. for MinIO or R2.
	Endpoint string `koanf:"endpoint"`
	Region   string `koanf:"region"`
	// PublicURL is a CDN or public bucket prefix. When set, URL returns
	// unsigned links under it.
	PublicURL string `koanf:"public_url"`
	PathStyle bool   `koanf:"path_style"`
}

// Object describes a listed object.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

const DefaultRegion = "us-east-1"

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
