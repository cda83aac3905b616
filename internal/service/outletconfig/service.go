package outletconfig

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/krtkm27/ZEats-OrderService/internal/domain"
	outletRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/outlet"
	"github.com/krtkm27/ZEats-OrderService/internal/service/outletconfig/models"
	"github.com/krtkm27/ZEats-OrderService/pkg/types"
)

// Service сервис настроек заведения: расписание, параметры слотов
// и мастер-выключатель открыто/закрыто
type Service struct {
	outletRepo OutletRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(outletRepo OutletRepository, logger Logger) *Service {
	return &Service{
		outletRepo: outletRepo,
		logger:     logger,
	}
}

// Get возвращает настройки заведения
// Доступно админам и сотрудникам этого заведения
func (s *Service) Get(ctx context.Context, outletID int64, actor domain.Actor) (*models.ConfigResponse, error) {
	s.logger.Info("Get: fetching config for outlet=%d, user=%d", outletID, actor.UserID)

	if !actor.CanManageOutlet(outletID) {
		s.logger.Warn("Get: access denied for user=%d to outlet=%d", actor.UserID, outletID)
		return nil, ErrAccessDenied
	}

	outlet, err := s.outletRepo.GetByID(ctx, outletID)
	if err != nil {
		if errors.Is(err, outletRepo.ErrOutletNotFound) {
			s.logger.Warn("Get: outlet id=%d not found", outletID)
			return nil, ErrOutletNotFound
		}
		s.logger.Error("Get: repository error for outlet=%d: %v", outletID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOutlet(outlet), nil
}

// Update обновляет настройки заведения
// Некорректные значения отклоняются здесь: генератор слотов вправе
// рассчитывать на валидные "HH:MM" и разумные интервалы
// Доступно админам и менеджерам этого заведения
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest, actor domain.Actor) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config for outlet=%d, user=%d", req.OutletID, actor.UserID)

	if !s.canEditConfig(req.OutletID, actor) {
		s.logger.Warn("Update: access denied for user=%d to outlet=%d", actor.UserID, req.OutletID)
		return nil, ErrAccessDenied
	}

	if err := s.validateConfig(req); err != nil {
		s.logger.Warn("Update: validation failed for outlet=%d: %v", req.OutletID, err)
		return nil, err
	}

	if err := s.outletRepo.UpdateSettings(ctx, req.OutletID, req.ToRepoParams()); err != nil {
		if errors.Is(err, outletRepo.ErrOutletNotFound) {
			s.logger.Warn("Update: outlet id=%d not found", req.OutletID)
			return nil, ErrOutletNotFound
		}
		s.logger.Error("Update: repository error for outlet=%d: %v", req.OutletID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	outlet, err := s.outletRepo.GetByID(ctx, req.OutletID)
	if err != nil {
		s.logger.Error("Update: failed to reread outlet=%d: %v", req.OutletID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated config for outlet=%d", req.OutletID)
	return models.FromDomainOutlet(outlet), nil
}

// SetLiveState переключает мастер-выключатель открыто/закрыто
// Доступно админам и любому сотруднику этого заведения
func (s *Service) SetLiveState(ctx context.Context, req *models.SetLiveStateRequest, actor domain.Actor) (*models.LiveStateResponse, error) {
	s.logger.Info("SetLiveState: outlet=%d, isOpen=%v, user=%d", req.OutletID, req.IsOpen, actor.UserID)

	if !actor.CanManageOutlet(req.OutletID) {
		s.logger.Warn("SetLiveState: access denied for user=%d to outlet=%d", actor.UserID, req.OutletID)
		return nil, ErrAccessDenied
	}

	if err := s.outletRepo.UpdateLiveState(ctx, req.OutletID, req.IsOpen); err != nil {
		if errors.Is(err, outletRepo.ErrOutletNotFound) {
			s.logger.Warn("SetLiveState: outlet id=%d not found", req.OutletID)
			return nil, ErrOutletNotFound
		}
		s.logger.Error("SetLiveState: repository error for outlet=%d: %v", req.OutletID, err)
		return nil, fmt.Errorf("%w: SetLiveState - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetLiveState: outlet=%d is now isOpen=%v", req.OutletID, req.IsOpen)
	return &models.LiveStateResponse{OutletID: req.OutletID, IsOpen: req.IsOpen}, nil
}

// canEditConfig менять расписание могут админы и менеджер заведения,
// но не рядовой персонал
func (s *Service) canEditConfig(outletID int64, actor domain.Actor) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.Role == domain.RolePartnerManager &&
		actor.OutletID != nil && *actor.OutletID == outletID
}

func (s *Service) validateConfig(req *models.UpdateConfigRequest) error {
	if req.SlotIntervalMinutes != nil {
		v := *req.SlotIntervalMinutes
		if v < domain.MinSlotIntervalMinutes || v > domain.MaxSlotIntervalMinutes {
			return fmt.Errorf("%w: slotInterval must be between %d and %d minutes",
				ErrInvalidInput, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
		}
	}

	if req.MaxOrdersPerSlot != nil {
		v := *req.MaxOrdersPerSlot
		if v < domain.MinOrdersPerSlot || v > domain.MaxOrdersPerSlotLimit {
			return fmt.Errorf("%w: maxOrdersPerSlot must be between %d and %d",
				ErrInvalidInput, domain.MinOrdersPerSlot, domain.MaxOrdersPerSlotLimit)
		}
	}

	if req.TimeZone != nil {
		if _, err := time.LoadLocation(*req.TimeZone); err != nil {
			return fmt.Errorf("%w: unknown time zone %q", ErrInvalidInput, *req.TimeZone)
		}
	}

	if req.Schedule != nil {
		if err := validateSchedule(req.Schedule); err != nil {
			return err
		}
	}

	return nil
}

// validateSchedule проверяет времена открытия/закрытия каждого дня
func validateSchedule(schedule *domain.WeeklySchedule) error {
	days := map[string]domain.DaySchedule{
		"monday":    schedule.Monday,
		"tuesday":   schedule.Tuesday,
		"wednesday": schedule.Wednesday,
		"thursday":  schedule.Thursday,
		"friday":    schedule.Friday,
		"saturday":  schedule.Saturday,
		"sunday":    schedule.Sunday,
	}

	for name, day := range days {
		if !day.IsOpen {
			continue
		}
		if day.OpenTime != nil {
			if err := types.TimeString(*day.OpenTime).Validate(); err != nil {
				return fmt.Errorf("%w: %s openTime: %v", ErrInvalidInput, name, err)
			}
		}
		if day.CloseTime != nil {
			if err := types.TimeString(*day.CloseTime).Validate(); err != nil {
				return fmt.Errorf("%w: %s closeTime: %v", ErrInvalidInput, name, err)
			}
		}
	}

	return nil
}
