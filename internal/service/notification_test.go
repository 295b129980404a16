package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conectaleads/internal/model"
	"conectaleads/internal/repository"
	repoMocks "conectaleads/internal/repository/mocks"
)

func TestNotificationService(t *testing.T) {
	ctx := context.Background()
	id := "33333333-3333-3333-3333-333333333333"

	tests := []struct {
		name       string
		setupMocks func(mRepo *repoMocks.MockNotificationRepository)
		run        func(svc NotificationService) error
		wantErr    error
	}{
		{
			name: "list unread",
			setupMocks: func(mRepo *repoMocks.MockNotificationRepository) {
				mRepo.On("List", ctx, true, repository.PageQuery{Limit: 10}).
					Return(&repository.PageResult[model.Notification]{Items: []model.Notification{{ID: id}}, Total: 1}, nil)
			},
			run: func(svc NotificationService) error {
				res, err := svc.List(ctx, true, 0, 0)
				if err == nil && res.Total != 1 {
					return errors.New("unexpected total")
				}
				return err
			},
		},
		{
			name: "mark read",
			setupMocks: func(mRepo *repoMocks.MockNotificationRepository) {
				mRepo.On("MarkRead", ctx, id).Return(nil)
			},
			run: func(svc NotificationService) error { return svc.MarkRead(ctx, id) },
		},
		{
			name: "mark read missing",
			setupMocks: func(mRepo *repoMocks.MockNotificationRepository) {
				mRepo.On("MarkRead", ctx, id).Return(sql.ErrNoRows)
			},
			run:     func(svc NotificationService) error { return svc.MarkRead(ctx, id) },
			wantErr: ErrNotFound,
		},
		{
			name:    "malformed id",
			run:     func(svc NotificationService) error { return svc.MarkRead(ctx, "42") },
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockNotificationRepository)
			if tt.setupMocks != nil {
				tt.setupMocks(mRepo)
			}

			err := tt.run(NewNotificationService(mRepo))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockNotificationRepository)
	mRepo.On("MarkAllRead", ctx).Return(int64(3), nil)

	n, err := NewNotificationService(mRepo).MarkAllRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
