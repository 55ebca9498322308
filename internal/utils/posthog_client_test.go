package utils

import (
	"log/slog"
	"testing"

	"github.com/posthog/posthog-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	posthog.Client
	captured []posthog.Capture
	closed   bool
}

func (c *recordingClient) Enqueue(msg posthog.Message) error {
	c.captured = append(c.captured, msg.(posthog.Capture))
	return nil
}

func (c *recordingClient) Close() error {
	c.closed = true
	return nil
}

func TestPosthogClientWrapper_Enqueue(t *testing.T) {
	client := &recordingClient{}
	w := NewPosthogClientWrapper(client, slog.Default())
	require.True(t, w.IsInitialized())

	w.Enqueue("u1", "transaction_added", map[string]any{"workspace_id": "w1"})
	w.Close()

	require.Len(t, client.captured, 1)
	assert.Equal(t, "u1", client.captured[0].DistinctId)
	assert.Equal(t, "transaction_added", client.captured[0].Event)
	assert.Equal(t, "w1", client.captured[0].Properties["workspace_id"])
	assert.True(t, client.closed)
}

func TestPosthogClientWrapper_DisabledIsNoop(t *testing.T) {
	disabled := InitializePosthogClient("", "https://eu.i.posthog.com", slog.Default())
	assert.False(t, disabled.IsInitialized())
	disabled.Enqueue("u1", "ignored", nil)
	disabled.Close()

	var missing *PosthogClientWrapper
	assert.False(t, missing.IsInitialized())
	missing.Enqueue("u1", "ignored", nil)
}
