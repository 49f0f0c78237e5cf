package main

import (
	"errors"
	"fmt"
	"testing"
	"wrestlenews/internal/adapter/social"
	"wrestlenews/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestDescribePostsError(t *testing.T) {
	missing := describePostsError(usecase.ErrMissingCredential)
	assert.ErrorIs(t, missing, usecase.ErrMissingCredential)
	assert.ErrorContains(t, missing, "X_BEARER_TOKEN")

	wrapped := fmt.Errorf("push: %w", &social.UpstreamError{StatusCode: 401, Body: `{"title":"Unauthorized"}`})
	assert.EqualError(t, describePostsError(wrapped), `X API rejected the request (status 401): {"title":"Unauthorized"}`)

	other := errors.New("disk full")
	assert.Equal(t, other, describePostsError(other))
}
