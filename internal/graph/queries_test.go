package graph

import (
	"bytes"
	"context"
	"testing"

	"vkgraph/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestIsKnownQuery(t *testing.T) {
	for _, name := range AllQueries {
		assert.True(t, IsKnownQuery(name), name)
	}
	assert.False(t, IsKnownQuery("top_cities"))
	assert.False(t, IsKnownQuery(""))
}

func TestRunAnalytics_UnknownQuery(t *testing.T) {
	store := &Store{logger: logger.Get()}

	var out bytes.Buffer
	err := store.RunAnalytics(context.Background(), "bogus", &out)
	assert.Error(t, err)
	assert.Empty(t, out.String())
}
