package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/necriesa/puso-t-tulong/internal/domain"
	"github.com/necriesa/puso-t-tulong/internal/repository"
)

// DriveService 负责募捐活动公告的业务逻辑。
type DriveService struct {
	driveRepo repository.DriveRepository
}

// NewDriveService 创建 DriveService 实例。
func NewDriveService(driveRepo repository.DriveRepository) *DriveService {
	if driveRepo == nil {
		panic("DriveRepository cannot be nil for DriveService")
	}
	return &DriveService{driveRepo: driveRepo}
}

// ListDrives 返回全部活动公告。
func (s *DriveService) ListDrives(ctx context.Context) ([]domain.Drive, error) {
	drives, err := s.driveRepo.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("Database error listing drives")
		return nil, ErrInternalServer
	}
	return drives, nil
}

// CreateDrive 持久化一条新活动公告。
func (s *DriveService) CreateDrive(ctx context.Context, name, location, details string, date time.Time) (*domain.Drive, error) {
	drive := &domain.Drive{
		Name:     name,
		Location: location,
		Details:  details,
		Date:     date,
	}

	if err := s.driveRepo.Save(ctx, drive); err != nil {
		logrus.WithError(err).WithField("name", name).Error("Database error during drive creation")
		return nil, ErrInternalServer
	}

	logrus.WithFields(logrus.Fields{"drive_id": drive.ID, "name": name}).Info("Drive created")
	return drive, nil
}
