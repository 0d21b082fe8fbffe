package main

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbocation/variantatlas/loader"
	"github.com/carbocation/variantatlas/variant"
)

func TestGlobalTableRecordsEachLoadOnce(t *testing.T) {
	release := make(chan struct{})
	ts := newTestServer(t, func() (*variant.Table, error) {
		<-release
		return fixtureTable(), nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table, err := ts.global.Table(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 4, table.Len())
		}()
	}
	close(release)
	wg.Wait()

	require.EqualValues(t, 1, atomic.LoadInt32(&ts.loads))
	require.Equal(t, 1.0, testutil.ToFloat64(ts.global.metrics.loads.WithLabelValues("ok")))
	require.Equal(t, 4.0, testutil.ToFloat64(ts.global.metrics.rows))

	ts.global.cache.Reset()
	_, err := ts.global.Table(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2.0, testutil.ToFloat64(ts.global.metrics.loads.WithLabelValues("ok")))
}

func TestGlobalTableRecordsFailures(t *testing.T) {
	ts := newTestServer(t, func() (*variant.Table, error) {
		return nil, &loader.MissingDataFileError{Tried: []string{"final_variant_data.csv"}}
	})

	for i := 0; i < 3; i++ {
		_, err := ts.global.Table(context.Background())
		require.ErrorIs(t, err, loader.ErrMissingDataFile)
	}

	require.EqualValues(t, 3, atomic.LoadInt32(&ts.loads))
	require.Equal(t, 3.0, testutil.ToFloat64(ts.global.metrics.loads.WithLabelValues("missing")))
	require.Equal(t, 0.0, testutil.ToFloat64(ts.global.metrics.loads.WithLabelValues("ok")))
}
