package concurrency

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPreservesOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	results, err := Map(context.Background(), 2, items, func(_ context.Context, i int) (int, error) {
		return i * i, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 9, 16, 25}, results)
}

func TestMapPropagatesFirstError(t *testing.T) {
	items := []int{1, 2, 3}
	sentinel := errors.New("boom")
	_, err := Map(context.Background(), 2, items, func(_ context.Context, i int) (int, error) {
		if i == 2 {
			return 0, sentinel
		}
		return i, nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestMapTolerantIsolatesPerItemErrors(t *testing.T) {
	items := []int{1, 2, 3}
	sentinel := errors.New("bad item")
	results, errs := MapTolerant(context.Background(), 2, items, func(_ context.Context, i int) (int, error) {
		if i == 2 {
			return 0, sentinel
		}
		return i * 10, nil
	})
	assert.Equal(t, []int{10, 0, 30}, results)
	assert.Nil(t, errs[0])
	assert.ErrorIs(t, errs[1], sentinel)
	assert.Nil(t, errs[2])
}
