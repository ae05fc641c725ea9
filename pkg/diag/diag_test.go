package diag

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageIsBareText(t *testing.T) {
	err := Type(CodeUndefinedFunction, "Undefined function '%s'", "greet")
	assert.Equal(t, "Undefined function 'greet'", err.Error())
	assert.Equal(t, StageType, err.Stage)
}

func TestIsAndStageOfSeeThroughWrapping(t *testing.T) {
	inner := Runtime(CodeArityMismatch, "Function '%s' expects %d arguments, got %d", "greet", 1, 0)
	wrapped := fmt.Errorf("run main.tagl: %w", inner)

	assert.True(t, Is(wrapped, CodeArityMismatch))
	assert.False(t, Is(wrapped, CodeTypeMismatch))

	stage, ok := StageOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, StageRuntime, stage)

	_, ok = StageOf(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"with location", Syntax(CodeExpectedToken, Location{Line: 3, Column: 7}, "Expected '{' after if condition"), "syntax error: line 3, column 7: Expected '{' after if condition"},
		{"line only", Syntax(CodeUnexpectedEOF, Location{Line: 2}, "Expected '}' after if body"), "syntax error: line 2: Expected '}' after if body"},
		{"no location", Type(CodeConditionType, "If condition must be a boolean, got String"), "type error: If condition must be a boolean, got String"},
		{"foreign", fmt.Errorf("boom"), "error: boom"},
		{"nil", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Describe(tc.err))
		})
	}
}
