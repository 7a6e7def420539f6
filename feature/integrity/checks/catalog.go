package checks

import (
	"context"
	"fmt"

	"wish-archive/core/storage"
	"wish-archive/feature/catalog"

	"github.com/minio/minio-go/v7"
)

// CheckCatalog returns the metadata documents missing under prefix.
func CheckCatalog(ctx context.Context, client storage.Client, bucket, prefix string) ([]string, error) {
	missing := []string{}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	for _, name := range catalog.RequiredObjects {
		objectPath := catalog.ObjectPath(prefix, name)
		opts := minio.ListObjectsOptions{
			Prefix:    objectPath,
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err == nil && obj.Key == objectPath {
				found = true
			}
			break
		}

		if !found {
			missing = append(missing, name)
		}
	}

	return missing, nil
}
