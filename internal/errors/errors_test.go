package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsInnermostCode(t *testing.T) {
	base := ParseFailed("csv", fmt.Errorf("wrong number of fields"))
	wrapped := Wrap(base, "upload rejected")

	assert.Equal(t, CodeParseError, GetCode(wrapped))
	assert.Contains(t, wrapped.Error(), "upload rejected")
	assert.Contains(t, wrapped.Error(), "wrong number of fields")
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
	assert.Nil(t, WithCode(CodeFetchError, nil))
}

func TestGetCodeForeignError(t *testing.T) {
	assert.Equal(t, CodeInternalError, GetCode(fmt.Errorf("plain")))
	assert.Equal(t, CodeFetchError, GetCode(fmt.Errorf("outer: %w", FetchFailed("url", nil))))
}

func TestSchemaMismatchKeepsCause(t *testing.T) {
	cause := fmt.Errorf("length mismatch: table has 2 columns, 14 names given")
	err := Wrap(SchemaMismatch(cause), "remote dataset")

	assert.Equal(t, CodeSchemaMismatch, GetCode(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "14 names given")
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeSchemaMismatch, fmt.Errorf("13 columns"))
	assert.Equal(t, CodeSchemaMismatch, GetCode(err))
	assert.Contains(t, err.Error(), "13 columns")
}
