package loader

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/kardianos/osext"

	"github.com/carbocation/variantatlas"
)

// DefaultCandidates are the input file names tried under each data root, in
// priority order.
var DefaultCandidates = []string{
	"final_variant_data.csv",
	"final_variant_data.csv.gz",
	"final_variant_data.zip",
}

// DefaultRoots searches the working directory first and then the folder the
// binary lives in.
func DefaultRoots() []string {
	roots := []string{"."}

	if folder, err := osext.ExecutableFolder(); err == nil && folder != "" {
		roots = append(roots, folder)
	}

	return roots
}

// CandidatePaths expands roots x names, root-major, dropping duplicates.
func CandidatePaths(roots, names []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(roots)*len(names))

	for _, root := range roots {
		for _, name := range names {
			p := variantatlas.JoinPath(root, name)
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}

	return out
}

// Resolve returns the first candidate that exists.
func Resolve(ctx context.Context, candidates []string, client *storage.Client) (string, error) {
	for _, path := range candidates {
		ok, err := variantatlas.Exists(ctx, path, client)
		if err != nil {
			return "", err
		}
		if ok {
			return path, nil
		}
	}

	return "", &MissingDataFileError{Tried: candidates}
}
