package variantatlas

import (
	"os/user"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	usr, err := user.Current()
	require.NoError(t, err)

	got, err := ExpandHome("~/data")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(usr.HomeDir, "data"), got)

	got, err = ExpandHome("~")
	require.NoError(t, err)
	require.Equal(t, filepath.Clean(usr.HomeDir), got)

	for _, p := range []string{"data", "/srv/data", "gs://bucket/~/data", "~user/data"} {
		got, err := ExpandHome(p)
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
}
