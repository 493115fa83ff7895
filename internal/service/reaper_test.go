package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/plugashop/storefront/config"
	"github.com/plugashop/storefront/internal/mocks"
)

func newCartReaperForTest(t *testing.T, ctrl *gomock.Controller, cfg config.CartReaperConfig) (*CartReaperService, *mocks.MockCartReaperStore) {
	t.Helper()
	store := mocks.NewMockCartReaperStore(ctrl)
	svc, err := NewCartReaperService(CartReaperServiceOptions{Store: store, Config: cfg})
	require.NoError(t, err)
	return svc, store
}

func TestCartReaperService_RunCleanupBatches(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cfg := config.CartReaperConfig{Interval: time.Minute, MaxIdle: time.Hour, BatchSize: 2}
	svc, store := newCartReaperForTest(t, ctrl, cfg)

	gomock.InOrder(
		store.EXPECT().DeleteIdleCarts(gomock.Any(), time.Hour, 2).Return(int64(2), nil),
		store.EXPECT().DeleteIdleCarts(gomock.Any(), time.Hour, 2).Return(int64(1), nil),
		store.EXPECT().DeleteIdleCarts(gomock.Any(), time.Hour, 2).Return(int64(0), nil),
	)

	require.NoError(t, svc.runCleanup(context.Background()))
}

func TestCartReaperService_RunCleanupPropagatesErrors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cfg := config.CartReaperConfig{Interval: time.Minute, MaxIdle: time.Hour, BatchSize: 10}
	svc, store := newCartReaperForTest(t, ctrl, cfg)

	store.EXPECT().DeleteIdleCarts(gomock.Any(), time.Hour, 10).Return(int64(0), assert.AnError)

	err := svc.runCleanup(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCartReaperService_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cfg := config.CartReaperConfig{Interval: time.Hour, MaxIdle: time.Hour, BatchSize: 10}
	svc, store := newCartReaperForTest(t, ctrl, cfg)

	// Initial sweep runs once; the hour-long ticker never fires before cancel.
	store.EXPECT().DeleteIdleCarts(gomock.Any(), time.Hour, 10).Return(int64(0), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err, "graceful shutdown is not an error")
	case <-time.After(5 * time.Second):
		t.Fatal("reaper did not stop after cancel")
	}
}

func TestCartReaperService_RequiresStore(t *testing.T) {
	t.Parallel()

	_, err := NewCartReaperService(CartReaperServiceOptions{})
	assert.Error(t, err)
}
