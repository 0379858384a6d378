package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryReportCache_SetGet(t *testing.T) {
	c := NewInMemoryReportCache()
	defer func() { _ = c.Close() }()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "trend:obzor:2", []byte(`{"ok":true}`), time.Minute))

	payload, found, err := c.Get(ctx, "trend:obzor:2")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`{"ok":true}`), payload)
}

func TestInMemoryReportCache_Miss(t *testing.T) {
	c := NewInMemoryReportCache()
	defer func() { _ = c.Close() }()

	_, found, err := c.Get(context.Background(), "trend:missing:1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInMemoryReportCache_Expiry(t *testing.T) {
	c := NewInMemoryReportCache()
	defer func() { _ = c.Close() }()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "trend:obzor:2", []byte("payload"), 10*time.Millisecond))

	time.Sleep(30 * time.Millisecond)

	_, found, err := c.Get(ctx, "trend:obzor:2")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInMemoryReportCache_CloseIdempotent(t *testing.T) {
	c := NewInMemoryReportCache()
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestReportKey_Normalization(t *testing.T) {
	assert.Equal(t, ReportKey("8250 Obzor, Bulgaria", 2), ReportKey("  8250  obzor, bulgaria ", 2))
	assert.NotEqual(t, ReportKey("Obzor", 1), ReportKey("Obzor", 2))
	assert.Equal(t, "trend:obzor:2", ReportKey("Obzor", 2))
}
