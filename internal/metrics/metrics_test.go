package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextfile(t *testing.T) {
	LoadsTotal.WithLabelValues("products", "cache").Inc()
	assert.GreaterOrEqual(t, testutil.ToFloat64(LoadsTotal.WithLabelValues("products", "cache")), 1.0)

	path := filepath.Join(t.TempDir(), "shop_pos.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `shop_pos_loads_total{kind="products",source="cache"}`)
}
