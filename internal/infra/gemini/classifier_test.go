package gemini_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fardanhakim/onepercent-bot/internal/infra/gemini"
)

func TestNewClassifier_RequiresAPIKey(t *testing.T) {
	_, err := gemini.NewClassifier(context.Background(), "", "gemini-2.0-flash")
	assert.Error(t, err)
}

func TestNewClassifier_BuildsWithoutNetwork(t *testing.T) {
	// Client construction is offline; only Classify talks to the API.
	c, err := gemini.NewClassifier(context.Background(), "test-key", "")
	require.NoError(t, err)
	assert.NotNil(t, c)
}
