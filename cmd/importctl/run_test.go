package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
)

func TestRunCmdRejectsNonCSVFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--file", "contacts.json"})
	cmd.SilenceErrors = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a .csv or .txt file")
}

func TestRunCmdRequiresFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run"})
	cmd.SilenceErrors = true

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "file" not set`)
}

func TestSummaryView(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	out := summaryView(domain.ImportSummary{
		ID: "run-1", FileName: "contacts.csv",
		InsertedCount: 1, UpdatedCount: 1, SkippedCount: 1, CreatedAt: at,
	})

	assert.Equal(t, "run-1", out.ID)
	assert.Equal(t, int64(1), out.SkippedCount)
	assert.Equal(t, at, out.CreatedAt)
}
