package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dopingplot/internal/config"
)

func TestNewStorageClientLocal(t *testing.T) {
	cfg := &config.Config{LocalReportsDir: t.TempDir()}

	client, err := NewStorageClient(context.Background(), DeploymentLocal, cfg)
	require.NoError(t, err)
	defer client.Close()

	assert.IsType(t, &LocalStorageClient{}, client)
}

func TestNewStorageClientErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewStorageClient(ctx, DeploymentLocal, nil)
	assert.Error(t, err, "nil config")

	_, err = NewStorageClient(ctx, DeploymentMode("s3"), &config.Config{})
	assert.ErrorContains(t, err, "unsupported deployment mode")

	_, err = NewStorageClient(ctx, DeploymentGCS, &config.Config{})
	assert.ErrorContains(t, err, "bucket name cannot be empty")
}

func TestDeploymentModesMatchConfig(t *testing.T) {
	assert.Equal(t, config.ModeLocal, string(DeploymentLocal))
	assert.Equal(t, config.ModeGCS, string(DeploymentGCS))
}
