package notification

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{5}$`)

func TestRandomCodeFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := randomCode()
		require.NoError(t, err)
		assert.Regexp(t, codePattern, code)
	}
}

func TestGenerateCodeRetriesOnCollision(t *testing.T) {
	calls := 0
	exists := func(ctx context.Context, code string) (bool, error) {
		calls++
		return calls <= 2, nil
	}

	code, err := GenerateCode(context.Background(), exists)
	require.NoError(t, err)
	assert.Regexp(t, codePattern, code)
	assert.Equal(t, 3, calls)
}

func TestGenerateCodeGivesUpEventually(t *testing.T) {
	exists := func(ctx context.Context, code string) (bool, error) {
		return true, nil
	}

	_, err := GenerateCode(context.Background(), exists)
	assert.ErrorIs(t, err, ErrCodeExhausted)
}
