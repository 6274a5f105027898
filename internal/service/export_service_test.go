package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmwangi/pesatrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportService_DownloadToFile(t *testing.T) {
	fake := testutil.NewFakeAPI("u@x.com", "secret123", "tok-1")
	defer fake.Close()
	fake.CSV = []byte("Date,Description,Category,Amount\n2024-03-01,Groceries,Food,100.00\n")

	exports := NewExportService(loggedInSession(t, fake))

	path := filepath.Join(t.TempDir(), "expenses.csv")
	require.NoError(t, exports.DownloadToFile(context.Background(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fake.CSV, data)
}
