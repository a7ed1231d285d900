package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestHandleCompute_KnownPrefix(t *testing.T) {
	t.Parallel()

	input := ComputeInput{Digits: 30}

	result, output, err := handleCompute(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	computed, ok := output.Data.(ComputeResult)
	require.True(t, ok)
	assert.Equal(t, "141592653589793238462643383279", computed.Digits)
	assert.Equal(t, 30, computed.Count)
}

func TestHandleCompute_ZeroDigits(t *testing.T) {
	t.Parallel()

	input := ComputeInput{Digits: 0}

	result, _, err := handleCompute(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "digits parameter is required")
}

func TestHandleCompute_TooManyDigits(t *testing.T) {
	t.Parallel()

	input := ComputeInput{Digits: MaxToolDigits + 1}

	result, _, err := handleCompute(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "exceeds maximum")
}

func TestHandleCompute_ResultIsJSON(t *testing.T) {
	t.Parallel()

	input := ComputeInput{Digits: 10}

	result, _, err := handleCompute(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)

	var decoded ComputeResult

	require.NoError(t, json.Unmarshal([]byte(text.Text), &decoded))
	assert.Equal(t, "1415926535", decoded.Digits)
}

func TestHandleStats_HistogramConservation(t *testing.T) {
	t.Parallel()

	input := StatsInput{Digits: 1_000}

	result, output, err := handleStats(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	stats, ok := output.Data.(StatsResult)
	require.True(t, ok)
	assert.Equal(t, uint64(1_000), stats.Digits)

	var sum uint64
	for _, c := range stats.Counts {
		sum += c
	}

	assert.Equal(t, stats.Digits, sum)
	assert.Positive(t, stats.EntropyBits)
	assert.True(t, stats.Uniform)
}

func TestHandleStats_NegativeDigits(t *testing.T) {
	t.Parallel()

	input := StatsInput{Digits: -5}

	result, _, err := handleStats(context.Background(), &mcpsdk.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
