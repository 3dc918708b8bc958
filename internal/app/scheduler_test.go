package app

import (
	"context"
	"errors"
	"testing"

	"go-asset/internal/depreciation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeBatchRunner struct {
	calls int
	err   error
}

func (f *fakeBatchRunner) BatchUpdate(context.Context) (depreciation.BatchResult, error) {
	f.calls++
	if f.err != nil {
		return depreciation.BatchResult{}, f.err
	}
	return depreciation.BatchResult{Success: true, AssetsUpdated: 3, AssetsSkipped: 1}, nil
}

func TestNewDepreciationScheduler(t *testing.T) {
	runner := &fakeBatchRunner{}

	c, err := newDepreciationScheduler("1 0 31 3 *", runner, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)

	_, err = newDepreciationScheduler("every now and then", runner, zap.NewNop())
	assert.Error(t, err)
}

func TestRunDepreciationBatch(t *testing.T) {
	t.Run("logs counts", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		runner := &fakeBatchRunner{}

		runDepreciationBatch(context.Background(), runner, zap.New(core))

		assert.Equal(t, 1, runner.calls)
		entries := logs.FilterMessage("scheduled depreciation finished").All()
		require.Len(t, entries, 1)
		assert.Equal(t, int64(3), entries[0].ContextMap()["updated"])
	})

	t.Run("logs failure", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		runner := &fakeBatchRunner{err: errors.New("lock held")}

		runDepreciationBatch(context.Background(), runner, zap.New(core))

		assert.Equal(t, 1, logs.FilterMessage("scheduled depreciation failed").Len())
	})
}
