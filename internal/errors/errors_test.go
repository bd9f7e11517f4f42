package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := New(CategoryLayout, SeverityFatal, "content root not found")
	assert.Equal(t, "layout (fatal): content root not found", err.Error())

	cause := fmt.Errorf("permission denied")
	wrapped := Wrap(cause, CategoryStaging, SeverityFatal, "staging write failed")
	assert.Equal(t, "staging (fatal): staging write failed: permission denied", wrapped.Error())
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := StagingFailed("setup-ssh", cause)
	require.ErrorIs(t, err, cause)

	var ee *EngineError
	require.True(t, stderrors.As(fmt.Errorf("run: %w", err), &ee))
	assert.Equal(t, CategoryStaging, ee.Category)
}

func TestWithContext(t *testing.T) {
	err := MissingPrimaryDocument("setup-ssh", "ru", "/content/posts/ru/setup-ssh")
	assert.Equal(t, "setup-ssh", err.Context["slug"])
	assert.Equal(t, "ru", err.Context["lang"])
	assert.Equal(t, SeverityWarning, err.Severity)
}

func TestIsCategory(t *testing.T) {
	err := fmt.Errorf("outer: %w", LayoutNotFound("/missing"))
	assert.True(t, IsCategory(err, CategoryLayout))
	assert.False(t, IsCategory(err, CategoryStaging))
	assert.False(t, IsCategory(fmt.Errorf("plain"), CategoryLayout))
}
