package main

import (
	"errors"
	"net/http"
	"testing"

	"foodgram-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type closerFunc func() error

func (f closerFunc) Close() error {
	return f()
}

func TestShutdownCollectsErrors(t *testing.T) {
	listenErr := errors.New("listen failed")
	closeErr := errors.New("close failed")

	err := shutdown(&http.Server{}, closerFunc(func() error { return closeErr }), logger.Nop(), listenErr)
	require.Error(t, err)

	collected := multierr.Errors(err)
	require.Len(t, collected, 2)
	assert.ErrorIs(t, err, listenErr)
	assert.ErrorIs(t, err, closeErr)
}

func TestShutdownCleanStop(t *testing.T) {
	closed := false
	err := shutdown(&http.Server{}, closerFunc(func() error {
		closed = true
		return nil
	}), logger.Nop(), nil)

	assert.NoError(t, err)
	assert.True(t, closed)
}
