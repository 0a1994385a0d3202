package apperr

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestProviderErrorMessage(t *testing.T) {
	err := &ProviderError{Provider: "newsapi", Status: 426, Message: "upgrade required"}
	assert.Equal(t, "newsapi: status 426: upgrade required", err.Error())

	err = &ProviderError{Provider: "newsapi", Message: "connection refused"}
	assert.Equal(t, "newsapi: connection refused", err.Error())
}

func TestProviderErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("search: %w", &ProviderError{Provider: "newsapi", Err: io.ErrUnexpectedEOF})

	var perr *ProviderError
	assert.Equal(t, true, errors.As(err, &perr))
	assert.Equal(t, true, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestValidation(t *testing.T) {
	err := Validation("%s is required", "title")

	var verr *ValidationError
	assert.Equal(t, true, errors.As(err, &verr))
	assert.Equal(t, "title is required", verr.Message)
}
