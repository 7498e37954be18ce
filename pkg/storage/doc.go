// Package storage reads and writes the content bucket on S3-compatible
// object storage.
//
// The bucket holds the markdown documents, the per-language profile JSON
// files, the profile picture, and the generated index.json manifest:
//
//	store, err := storage.New(storage.Config{
//		Bucket:    "portfolio",
//		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
//		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
//		Endpoint:  "http://localhost:9000", // MinIO
//		PathStyle: true,
//	})
//
//	rc, err := store.Get(ctx, "articles/intro.en.md")
//	objs, err := store.List(ctx, "showcases/")
//	url, err := store.URL(ctx, "me.png", storage.WithExpiry(time.Hour))
//
// URL returns the PublicURL-based address when one is configured, and a
// pre-signed GET otherwise, so a private bucket can still serve images.
//
// S3 errors are normalized to sentinels: check with errors.Is(err, storage.ErrNotFound).
package storage
