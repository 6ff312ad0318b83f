package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	mem := &MemoryAPI{}
	scoped := NewScopedAPI("gdp", mem)

	scoped.ReportCount("extract.accepted", 3)
	scoped.ReportBroken("client.fetch", "boom")
	scoped.ReportDebug("skipped row", 1)

	count, ok := mem.Count("gdp: extract.accepted")
	require.True(t, ok)
	require.Equal(t, int64(3), count)

	broken := mem.Broken()
	require.Len(t, broken, 1)
	require.Equal(t, "gdp: client.fetch", broken[0].ID)
	require.Equal(t, []any{"boom"}, broken[0].Params)

	_, ok = mem.Count("extract.accepted")
	require.False(t, ok)
	require.Len(t, mem.Reports(), 3)
}
