package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/chudnovsky"
	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/digitstats"
)

// Tool name constants.
const (
	ToolNameCompute = "pi_compute_digits"
	ToolNameStats   = "pi_digit_stats"
)

// MaxToolDigits bounds a single tool call so a misbehaving client cannot
// pin the server on a multi-hour computation.
const MaxToolDigits = 1_000_000

// Sentinel errors for tool input validation.
var (
	// ErrDigitsRequired indicates the digits parameter is missing or zero.
	ErrDigitsRequired = errors.New("digits parameter is required and must be positive")
	// ErrDigitsTooLarge indicates the digits parameter exceeds the limit.
	ErrDigitsTooLarge = errors.New("digits parameter exceeds maximum")
)

// Input types (auto-generate JSON schemas via struct tags).

// ComputeInput is the input schema for the pi_compute_digits tool.
type ComputeInput struct {
	Digits int `json:"digits"          jsonschema:"number of fractional digits to compute (max 1000000)"`
	Guard  int `json:"guard,omitempty" jsonschema:"extra working digits for rounding safety (default 20, min 16)"`
}

// StatsInput is the input schema for the pi_digit_stats tool.
type StatsInput struct {
	Digits int `json:"digits" jsonschema:"number of fractional digits to analyze (max 1000000)"`
}

// ComputeResult is the structured output of the pi_compute_digits tool.
type ComputeResult struct {
	Digits string `json:"digits"`
	Count  int    `json:"count"`
}

// StatsResult is the structured output of the pi_digit_stats tool.
type StatsResult struct {
	Digits       uint64     `json:"digits"`
	Counts       [10]uint64 `json:"counts"`
	ChiSquared   float64    `json:"chi_squared"`
	EntropyBits  float64    `json:"entropy_bits"`
	MaxDeviation float64    `json:"max_deviation"`
	Uniform      bool       `json:"uniform"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

func validateDigits(digits int) error {
	if digits <= 0 {
		return ErrDigitsRequired
	}

	if digits > MaxToolDigits {
		return fmt.Errorf("%w: %d (max %d)", ErrDigitsTooLarge, digits, MaxToolDigits)
	}

	return nil
}

// handleCompute processes pi_compute_digits tool calls.
func handleCompute(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input ComputeInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateDigits(input.Digits); err != nil {
		return errorResult(err)
	}

	guard := input.Guard
	if guard == 0 {
		guard = chudnovsky.DefaultGuardDigits
	}

	if guard < chudnovsky.MinGuardDigits {
		guard = chudnovsky.MinGuardDigits
	}

	digits := chudnovsky.ComputeDigits(input.Digits, guard)
	if len(digits) > input.Digits {
		digits = digits[:input.Digits]
	}

	text := make([]byte, len(digits))
	for i, d := range digits {
		text[i] = '0' + d
	}

	return jsonResult(ComputeResult{
		Digits: string(text),
		Count:  len(text),
	})
}

// handleStats processes pi_digit_stats tool calls.
func handleStats(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	input StatsInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if err := validateDigits(input.Digits); err != nil {
		return errorResult(err)
	}

	digits := chudnovsky.ComputeDigits(input.Digits, chudnovsky.DefaultGuardDigits)
	if len(digits) > input.Digits {
		digits = digits[:input.Digits]
	}

	tracker := digitstats.NewTracker(digitstats.Options{})
	for _, d := range digits {
		tracker.Ingest(d)
	}

	snap := tracker.Snapshot(false, 0)

	return jsonResult(StatsResult{
		Digits:       snap.Digits,
		Counts:       snap.Counts,
		ChiSquared:   snap.ChiSquared,
		EntropyBits:  snap.EntropyBits,
		MaxDeviation: snap.MaxDeviation,
		Uniform:      snap.Uniform(),
	})
}
