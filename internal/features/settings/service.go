package settings

import (
	"context"
	"time"
)

type SettingsService interface {
	GetGeneralConfig(ctx context.Context) (*GeneralConfig, error)
	UpdateGeneralConfig(ctx context.Context, config GeneralConfig) error
	GetUploadsConfig(ctx context.Context) (*UploadsConfig, error)
	UpdateUploadsConfig(ctx context.Context, config UploadsConfig) error
	UploadLimits(ctx context.Context) (int64, []string, bool, error)
}

type SettingsServiceImpl struct {
	Repo SettingsRepository
}

func NewSettingsService(repo SettingsRepository) SettingsService {
	return &SettingsServiceImpl{
		Repo: repo,
	}
}

func (s *SettingsServiceImpl) GetGeneralConfig(ctx context.Context) (*GeneralConfig, error) {
	settings, err := s.Repo.GetByType(ctx, SettingsTypeGeneral)
	if err != nil {
		return nil, err
	}
	if settings == nil || settings.General == nil {
		return &GeneralConfig{
			AppName:  "Back Office",
			Currency: "USD",
			Timezone: "UTC",
		}, nil
	}
	return settings.General, nil
}

func (s *SettingsServiceImpl) UpdateGeneralConfig(ctx context.Context, config GeneralConfig) error {
	return s.Repo.Upsert(ctx, &Settings{
		Type:      SettingsTypeGeneral,
		General:   &config,
		UpdatedAt: time.Now(),
	})
}

func (s *SettingsServiceImpl) GetUploadsConfig(ctx context.Context) (*UploadsConfig, error) {
	settings, err := s.Repo.GetByType(ctx, SettingsTypeUploads)
	if err != nil {
		return nil, err
	}
	if settings == nil || settings.Uploads == nil {
		return &UploadsConfig{
			MaxFileSizeMB: 10,
			Optimize:      true,
		}, nil
	}
	return settings.Uploads, nil
}

// UploadLimits exposes the uploads config in the shape upload enforcement
// consumes: a byte limit, accepted categories and the optimize default.
func (s *SettingsServiceImpl) UploadLimits(ctx context.Context) (int64, []string, bool, error) {
	config, err := s.GetUploadsConfig(ctx)
	if err != nil {
		return 0, nil, false, err
	}
	return int64(config.MaxFileSizeMB) << 20, config.AllowedTypes, config.Optimize, nil
}

func (s *SettingsServiceImpl) UpdateUploadsConfig(ctx context.Context, config UploadsConfig) error {
	return s.Repo.Upsert(ctx, &Settings{
		Type:      SettingsTypeUploads,
		Uploads:   &config,
		UpdatedAt: time.Now(),
	})
}
