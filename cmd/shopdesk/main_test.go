package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteList(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"route:list"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	got := out.String()
	assert.Contains(t, got, "METHOD")
	assert.Contains(t, got, "/api/orders/{id}")
	assert.Contains(t, got, "orders.destroy")
	assert.Contains(t, got, "/metrics")
}
