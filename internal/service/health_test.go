package service

import (
	"context"
	"errors"
	"testing"

	"github.com/flightctl/romannumeral/pkg/roman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCheckHealth(t *testing.T) {
	h, _, _ := newTestHandler(t, roman.NewConverter(), CacheOptions{})
	require.NoError(t, h.CheckHealth(context.Background()))

	ctrl := gomock.NewController(t)
	converter := NewMockConverter(ctrl)
	h, _, _ = newTestHandler(t, converter, CacheOptions{})

	converter.EXPECT().Convert(roman.MaxValue).Return("MMMM", nil)
	assert.ErrorContains(t, h.CheckHealth(context.Background()), "expected \"MMMCMXCIX\"")

	converter.EXPECT().Convert(roman.MaxValue).Return("", errors.New("broken"))
	assert.ErrorContains(t, h.CheckHealth(context.Background()), "broken")

	// a cancelled context never reaches the converter
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, h.CheckHealth(ctx), context.Canceled)
}

func TestGetVersion(t *testing.T) {
	h, _, _ := newTestHandler(t, roman.NewConverter(), CacheOptions{})
	assert.NotEmpty(t, h.GetVersion(context.Background()).Version)
}
