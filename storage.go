package variantatlas

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// IsGoogleStoragePath reports whether path is a gs:// URL.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// SplitGoogleStoragePath splits gs://bucket/object into its bucket and object
// names.
func SplitGoogleStoragePath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

// JoinPath joins a data root and a file name. Roots may be local directories
// or gs:// prefixes.
func JoinPath(root, name string) string {
	if root == "" {
		return name
	}
	if IsGoogleStoragePath(root) {
		return strings.TrimSuffix(root, "/") + "/" + name
	}

	return strings.TrimSuffix(root, string(os.PathSeparator)) + string(os.PathSeparator) + name
}

// Exists reports whether path names a readable regular file. For gs:// paths
// this costs one metadata request. A nil client makes every gs:// path absent.
func Exists(ctx context.Context, path string, client *storage.Client) (bool, error) {
	if IsGoogleStoragePath(path) {
		if client == nil {
			return false, nil
		}

		bucket, object, err := SplitGoogleStoragePath(path)
		if err != nil {
			return false, err
		}

		_, err = client.Bucket(bucket).Object(object).Attrs(ctx)
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return false, nil
		} else if err != nil {
			return false, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}

		return true, nil
	}

	fi, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	return fi.Mode().IsRegular(), nil
}

// Open opens a local file or a Google Storage object for streaming reads.
func Open(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	if IsGoogleStoragePath(path) {
		if client == nil {
			return nil, fmt.Errorf("%s: no Google Storage client configured", path)
		}

		bucket, object, err := SplitGoogleStoragePath(path)
		if err != nil {
			return nil, err
		}

		rdr, err := client.Bucket(bucket).Object(object).NewReader(ctx)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
		}

		return rdr, nil
	}

	return os.Open(path)
}
