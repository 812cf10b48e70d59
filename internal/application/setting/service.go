// Package setting manages the AI agent prompt settings. The settings table
// holds a single active row maintained through updates only; there is no
// create or delete operation.
package setting

import (
	"context"
	"fmt"

	domainSetting "dcfagents/internal/domain/setting"
	"dcfagents/internal/infrastructure/cache"
	"dcfagents/internal/shared/constants"
	"dcfagents/internal/shared/db"
	"dcfagents/internal/shared/errors"
	"dcfagents/internal/shared/logger"
)

type Service struct {
	settingsRepo domainSetting.Repository
	cache        cache.Store
	txManager    *db.TransactionManager
	logger       logger.Interface
}

func NewService(
	settingsRepo domainSetting.Repository,
	cacheStore cache.Store,
	txManager *db.TransactionManager,
	log logger.Interface,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		cache:        cacheStore,
		txManager:    txManager,
		logger:       log,
	}
}

func (s *Service) ListAll(ctx context.Context) ([]*SettingsResponse, error) {
	return cache.GetOrLoad(ctx, s.cache, s.logger, constants.CacheKeySettings,
		func(ctx context.Context) ([]*SettingsResponse, error) {
			settings, err := s.settingsRepo.FindAll(ctx)
			if err != nil {
				return nil, err
			}
			return toSettingsResponses(settings), nil
		})
}

// GetCurrent returns the active settings row, which is the first one.
func (s *Service) GetCurrent(ctx context.Context) (*SettingsResponse, error) {
	settings, err := s.settingsRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(settings) == 0 {
		return nil, errors.NewNotFoundError("no settings configured")
	}

	return toSettingsResponse(settings[0]), nil
}

func (s *Service) Update(ctx context.Context, id uint, request UpdateSettingsRequest) (*SettingsResponse, error) {
	var updated *domainSetting.AiSettings

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		settings, err := s.settingsRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if settings == nil {
			return errors.NewNotFoundError(fmt.Sprintf("settings with id %d not found", id))
		}

		if request.Key != nil {
			settings.UpdateKey(*request.Key)
		}
		if request.PromptAgent1 != nil {
			settings.UpdatePromptAgent1(*request.PromptAgent1)
		}
		if request.PromptAgent2 != nil {
			settings.UpdatePromptAgent2(*request.PromptAgent2)
		}
		if request.PromptAgent3 != nil {
			settings.UpdatePromptAgent3(*request.PromptAgent3)
		}
		if request.PromptAgent4 != nil {
			settings.UpdatePromptAgent4(*request.PromptAgent4)
		}

		if err := s.settingsRepo.Update(ctx, settings); err != nil {
			return err
		}

		updated = settings
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, constants.CacheKeySettings); err != nil {
		s.logger.Warnw("failed to invalidate settings cache", "error", err)
	}
	s.logger.Infow("settings updated", "settings_id", id)

	return toSettingsResponse(updated), nil
}
