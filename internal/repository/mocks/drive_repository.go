package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/necriesa/puso-t-tulong/internal/domain"
)

// DriveRepository 是 repository.DriveRepository 的 Mock 实现。
type DriveRepository struct {
	mock.Mock
}

func (m *DriveRepository) Save(ctx context.Context, drive *domain.Drive) error {
	args := m.Called(ctx, drive)
	return args.Error(0)
}

func (m *DriveRepository) List(ctx context.Context) ([]domain.Drive, error) {
	args := m.Called(ctx)
	var drives []domain.Drive
	if args.Get(0) != nil {
		drives = args.Get(0).([]domain.Drive)
	}
	return drives, args.Error(1)
}
