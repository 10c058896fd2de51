package service

import (
	"context"
	"strings"

	"radar/pkg/apperror"
	"radar/pkg/auth"
	"radar/pkg/dto"
	"radar/pkg/logger"
	"radar/pkg/models"
	eventtypes "radar/pkg/types/eventtype"

	"github.com/samber/lo"
)

var (
	ErrInterestNameRequired = apperror.Validation("Interest name is required")
	ErrInvalidWeight        = apperror.Validation("Invalid weight value")
)

type InterestService struct {
	repo   InterestStore
	events EventEmitter
}

func NewInterestService(repo InterestStore, events EventEmitter) *InterestService {
	return &InterestService{repo: repo, events: events}
}

// 관심사 목록 조회 (연결된 유저 포함)
func (s *InterestService) ListInterests(ctx context.Context) ([]dto.InterestWithUsersDTO, error) {
	interests, err := s.repo.ListInterests(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(interests, func(item models.Interest, _ int) dto.InterestWithUsersDTO {
		return dto.ToInterestWithUsersDTO(item)
	}), nil
}

// 관심사 생성. weight가 없으면 1.0
func (s *InterestService) CreateInterest(ctx context.Context, caller auth.Caller, req dto.InterestCreateRequest) (*dto.InterestDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInterestNameRequired
	}

	weight := models.DefaultInterestWeight
	if req.Weight.Set {
		w, ok := req.Weight.Get()
		if !ok || w < 0 {
			return nil, ErrInvalidWeight
		}
		weight = w
	}

	interest := &models.Interest{Name: name, Weight: weight}
	if err := s.repo.InsertInterest(ctx, interest); err != nil {
		return nil, err
	}

	logger.Info(logger.LogEventInterestChange, "interest created", map[string]interface{}{"interest_id": interest.ID, "name": name})
	s.events.Emit(eventtypes.EventTypeInterestCreated, eventtypes.InterestEvent{InterestID: interest.ID, Name: name, ActorID: caller.ID})

	result := dto.ToInterestDTO(*interest)
	return &result, nil
}

// 관심사 단건 조회. 없으면 "Interest not found"
func (s *InterestService) GetInterest(ctx context.Context, id string) (*dto.InterestDTO, error) {
	interest, err := s.repo.GetInterestByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := dto.ToInterestDTO(*interest)
	return &result, nil
}

// 관심사 수정 (name, weight)
func (s *InterestService) UpdateInterest(ctx context.Context, caller auth.Caller, id string, update dto.InterestUpdate) (*dto.InterestDTO, error) {
	if _, err := s.repo.GetInterestByID(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if update.Name.Set {
		name, ok := update.Name.Get()
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, ErrInterestNameRequired
		}
		fields["name"] = name
	}
	if update.Weight.Set {
		weight, ok := update.Weight.Get()
		if !ok || weight < 0 {
			return nil, ErrInvalidWeight
		}
		fields["weight"] = weight
	}

	if err := s.repo.UpdateInterestFields(ctx, id, fields); err != nil {
		return nil, err
	}

	interest, err := s.repo.GetInterestByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		logger.Info(logger.LogEventInterestChange, "interest updated", map[string]interface{}{"interest_id": id})
		s.events.Emit(eventtypes.EventTypeInterestUpdated, eventtypes.InterestEvent{InterestID: id, Name: interest.Name, ActorID: caller.ID})
	}

	result := dto.ToInterestDTO(*interest)
	return &result, nil
}

// 관심사 삭제
func (s *InterestService) DeleteInterest(ctx context.Context, caller auth.Caller, id string) error {
	interest, err := s.repo.GetInterestByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteInterest(ctx, id); err != nil {
		return err
	}

	logger.Info(logger.LogEventInterestChange, "interest deleted", map[string]interface{}{"interest_id": id})
	s.events.Emit(eventtypes.EventTypeInterestDeleted, eventtypes.InterestEvent{InterestID: id, Name: interest.Name, ActorID: caller.ID})
	return nil
}
