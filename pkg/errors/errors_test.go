package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	appErr := New("CODE", "something failed", http.StatusBadRequest)
	require.Equal(t, "something failed", appErr.Error())

	inner := errors.New("db down")
	withInternal := appErr.WithInternal(inner)
	require.Equal(t, "something failed: db down", withInternal.Error())
	require.Equal(t, inner, withInternal.Unwrap())

	// WithInternal must not mutate the original sentinel.
	require.Nil(t, appErr.Internal)
}

func TestFromError(t *testing.T) {
	require.Nil(t, FromError(nil))

	appErr := NewBadRequest("bad input")
	require.Same(t, appErr, FromError(appErr))

	wrapped := fmt.Errorf("outer: %w", appErr)
	require.Same(t, appErr, FromError(wrapped))

	generic := FromError(errors.New("boom"))
	require.Equal(t, ErrInternalServer.Code, generic.Code)
	require.Equal(t, http.StatusInternalServerError, generic.StatusCode)
	require.EqualError(t, generic.Unwrap(), "boom")
}

func TestWrapKeepsOriginal(t *testing.T) {
	inner := errors.New("disk full")
	wrapped := Wrap(inner, "could not save")

	require.Equal(t, http.StatusInternalServerError, wrapped.StatusCode)
	require.True(t, errors.Is(wrapped, inner))
	require.Equal(t, "could not save: disk full", wrapped.Error())
}
