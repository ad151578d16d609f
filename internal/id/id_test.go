package id_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recmock/recmock/internal/id"
)

func TestShort(t *testing.T) {
	a := id.Short()
	b := id.Short()
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}

func TestUUID(t *testing.T) {
	u := id.UUID()
	assert.Len(t, u, 36)
	assert.NotEqual(t, u, id.UUID())
}
