package casebot_test

import (
	"testing"

	"github.com/fwojciec/casebot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts successful page", func(t *testing.T) {
		t.Parallel()

		p := &casebot.Page{URL: "https://example.com", Status: casebot.PageSuccess}

		assert.NoError(t, p.Validate())
	})

	t.Run("accepts failed page with error", func(t *testing.T) {
		t.Parallel()

		p := &casebot.Page{URL: "https://example.com", Status: casebot.PageError, Error: "HTTP 404: Not Found"}

		assert.NoError(t, p.Validate())
	})

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()

		err := (&casebot.Page{Status: casebot.PageSuccess}).Validate()

		require.Error(t, err)
		assert.Equal(t, casebot.EINVALID, casebot.ErrorCode(err))
	})

	t.Run("requires error message on failed page", func(t *testing.T) {
		t.Parallel()

		err := (&casebot.Page{URL: "https://example.com", Status: casebot.PageError}).Validate()

		require.Error(t, err)
		assert.Contains(t, casebot.ErrorMessage(err), "error message required")
	})

	t.Run("rejects enrichment on failed page", func(t *testing.T) {
		t.Parallel()

		p := &casebot.Page{
			URL:        "https://example.com",
			Status:     casebot.PageError,
			Error:      "network error: timeout",
			Enrichment: &casebot.Enrichment{},
		}

		require.Error(t, p.Validate())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()

		err := (&casebot.Page{URL: "https://example.com", Status: "pending"}).Validate()

		require.Error(t, err)
		assert.Contains(t, casebot.ErrorMessage(err), "unknown status")
	})
}

func TestCountSuccessfulAndEnriched(t *testing.T) {
	t.Parallel()

	pages := []*casebot.Page{
		{URL: "a", Status: casebot.PageSuccess, Enrichment: &casebot.Enrichment{}},
		{URL: "b", Status: casebot.PageSuccess},
		{URL: "c", Status: casebot.PageError, Error: "HTTP 500"},
	}

	assert.Equal(t, 2, casebot.CountSuccessful(pages))
	assert.Equal(t, 1, casebot.CountEnriched(pages))
}
