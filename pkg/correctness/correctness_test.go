package correctness_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufield/identifiers/pkg/correctness"
)

func TestCheckValidString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		errorMsg string
	}{
		{name: "simple name", input: "RiskEngine"},
		{name: "with separators", input: "Trader-001.Strategy_A"},
		{name: "inner whitespace", input: "Risk Engine"},
		{name: "single char", input: "X"},
		{name: "empty", input: "", wantErr: true, errorMsg: "was empty"},
		{name: "spaces only", input: "   ", wantErr: true, errorMsg: "was all whitespace"},
		{name: "tabs and newlines", input: "\t\n", wantErr: true, errorMsg: "was all whitespace"},
		{name: "non-ascii", input: "Moteur€", wantErr: true, errorMsg: "contained a non-ASCII char"},
		{name: "non-ascii whitespace only", input: "\u00a0\u2003", wantErr: true, errorMsg: "was all whitespace"},
		{name: "non-ascii with padding", input: " \u00e9 ", wantErr: true, errorMsg: "contained a non-ASCII char"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := correctness.CheckValidString(tt.input, "value")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
			assert.ErrorIs(t, err, correctness.ErrInvalidString)

			var ve *correctness.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "value", ve.Field)
			assert.Equal(t, tt.input, ve.Value)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &correctness.ValidationError{Field: "value", Value: "", Message: "was empty"}
	assert.Equal(t, `invalid string for 'value': was empty (value: "")`, err.Error())
}

func TestIsValidationError(t *testing.T) {
	err := correctness.CheckValidString("", "value")
	assert.True(t, correctness.IsValidationError(err))
	assert.True(t, correctness.IsValidationError(fmt.Errorf("decode: %w", err)))
	assert.False(t, correctness.IsValidationError(errors.New("boom")))
	assert.False(t, correctness.IsValidationError(nil))
}

func TestNewRuleChecker(t *testing.T) {
	tests := []struct {
		name    string
		rules   correctness.Rules
		wantErr string
	}{
		{name: "zero rules", rules: correctness.Rules{}},
		{name: "max length", rules: correctness.Rules{MaxLength: 16}},
		{name: "pattern", rules: correctness.Rules{Pattern: `[A-Z][A-Za-z0-9-]*`}},
		{name: "tag", rules: correctness.Rules{Tag: "alphanum"}},
		{name: "negative max length", rules: correctness.Rules{MaxLength: -1}, wantErr: "invalid rules"},
		{name: "bad pattern", rules: correctness.Rules{Pattern: `([`}, wantErr: "invalid pattern"},
		{name: "unknown tag", rules: correctness.Rules{Tag: "no_such_tag"}, wantErr: "invalid validation tag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker, err := correctness.NewRuleChecker(tt.rules)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, checker)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rules, checker.Rules())
		})
	}
}

func TestRuleChecker_Check(t *testing.T) {
	checker, err := correctness.NewRuleChecker(correctness.Rules{
		MaxLength: 12,
		Pattern:   `[A-Z][A-Za-z0-9-]*`,
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		errorMsg string
	}{
		{name: "valid", input: "RiskEngine"},
		{name: "empty still rejected", input: "", errorMsg: "was empty"},
		{name: "whitespace still rejected", input: "  ", errorMsg: "was all whitespace"},
		{name: "too long", input: "ExecutionEngineX", errorMsg: "must be at most 12 characters"},
		{name: "pattern mismatch", input: "riskEngine", errorMsg: "must match pattern"},
		{name: "pattern is anchored", input: "Risk Engine", errorMsg: "must match pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checker.Check(tt.input, "value")
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, correctness.ErrInvalidString)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestRuleChecker_PatternWithAlternation(t *testing.T) {
	checker, err := correctness.NewRuleChecker(correctness.Rules{Pattern: `^Risk|Exec`})
	require.NoError(t, err)

	assert.NoError(t, checker.Check("Risk", "value"))
	assert.NoError(t, checker.Check("Exec", "value"))

	for _, input := range []string{"RiskXYZ", "FooExec", "RiskExec"} {
		err := checker.Check(input, "value")
		require.Error(t, err, input)
		assert.Contains(t, err.Error(), "must match pattern")
	}
}

func TestRuleChecker_Tag(t *testing.T) {
	checker, err := correctness.NewRuleChecker(correctness.Rules{Tag: "alphanum"})
	require.NoError(t, err)

	assert.NoError(t, checker.Check("RiskEngine", "value"))

	err = checker.Check("Risk-Engine", "value")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must contain only alphanumeric characters")
}

func TestRules_IsZero(t *testing.T) {
	assert.True(t, correctness.Rules{}.IsZero())
	assert.False(t, correctness.Rules{MaxLength: 1}.IsZero())
	assert.False(t, correctness.Rules{Pattern: "x"}.IsZero())
}

func TestSetDefault(t *testing.T) {
	t.Cleanup(func() { correctness.SetDefault(nil) })

	assert.NoError(t, correctness.Check("risk", "value"))

	correctness.SetDefault(correctness.CheckerFunc(func(value, field string) error {
		if value != "RiskEngine" {
			return &correctness.ValidationError{Field: field, Value: value, Message: "not allowed"}
		}
		return nil
	}))

	assert.NoError(t, correctness.Check("RiskEngine", "value"))
	assert.ErrorContains(t, correctness.Check("risk", "value"), "not allowed")

	correctness.SetDefault(nil)
	assert.NoError(t, correctness.Check("risk", "value"))
}

func TestCheck_RejectsEmptyWithPermissiveChecker(t *testing.T) {
	t.Cleanup(func() { correctness.SetDefault(nil) })

	correctness.SetDefault(correctness.CheckerFunc(func(string, string) error { return nil }))

	err := correctness.Check("", "value")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "was empty")
}
