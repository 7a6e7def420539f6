// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small read-only interface. The
// metadata catalog (avatars, weapons, banner windows) is published as JSON
// objects in a bucket and read through this client. Both AWS S3 and
// self-hosted MinIO instances are supported.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - GetObject: Retrieves content as a stream.
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//   - StatObject: Reads object metadata such as the ETag, used as catalog version.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "wish-metadata")
package storage
