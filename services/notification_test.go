package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionRegistryRoundTrip(t *testing.T) {
	registry := NewSessionRegistry()

	_, ok := registry.SocketID("alice")
	assert.False(t, ok)

	registry.Register("alice", "sock-1")
	id, ok := registry.SocketID("alice")
	assert.True(t, ok)
	assert.Equal(t, "sock-1", id)

	registry.Register("alice", "sock-2")
	id, _ = registry.SocketID("alice")
	assert.Equal(t, "sock-2", id)

	registry.Unregister("alice")
	_, ok = registry.SocketID("alice")
	assert.False(t, ok)
}
