//go:build integration

package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashank8104/resume-intelligence/internal/llm"
)

func TestIntegration_LLMParsesRealPosting(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set, skipping integration test")
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	ing := New(Options{Client: client})
	job, src, err := ing.FromFile(ctx, filepath.Join("testdata", "backend_posting.txt"))
	require.NoError(t, err)

	assert.Equal(t, ParserGemini, src.Parser)
	assert.NoError(t, job.Validate())
	assert.NotEmpty(t, job.RequiredSkills)
	assert.Contains(t, job.Company, "Acme")
}
