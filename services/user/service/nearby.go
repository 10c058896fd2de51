package service

import (
	"context"
	"sort"

	"radar/pkg/apperror"
	"radar/pkg/dto"
	"radar/pkg/geo"
	"radar/pkg/logger"
	"radar/pkg/models"
)

var ErrLocationNotSet = apperror.Precondition("Please set your location preferences first")

// RankNearby는 반경 안의 후보만 남기고 거리 오름차순으로 정렬합니다.
// 거리는 소수 둘째 자리로 반올림한 값으로 비교하며, 같은 거리는 입력 순서를 유지합니다.
func RankNearby(origin geo.Point, radius int, candidates []models.User) []dto.NearbyUserDTO {
	nearby := make([]dto.NearbyUserDTO, 0, len(candidates))
	for _, candidate := range candidates {
		point, ok := candidate.Location()
		if !ok {
			continue
		}

		distance := geo.FormatDistance(origin.DistanceTo(point))
		if !geo.WithinRadius(distance, radius) {
			continue
		}

		nearby = append(nearby, dto.NearbyUserDTO{
			UserDTO:  dto.ToUserDTO(candidate),
			Distance: distance,
		})
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].Distance < nearby[j].Distance
	})
	return nearby
}

// 주변 유저 검색
func (s *UserService) FindNearby(ctx context.Context, requesterID int) (*dto.NearbyResponse, error) {
	requester, err := s.GetUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	origin, ok := requester.Location()
	if !ok {
		return nil, ErrLocationNotSet
	}

	candidates, err := s.repo.FindLocatedUsersExcept(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	users := RankNearby(origin, requester.Radius, candidates)
	logger.Debug(logger.LogEventNearbySearch, "nearby search", map[string]interface{}{
		"user_id": requesterID,
		"radius":  requester.Radius,
		"count":   len(users),
	})

	return &dto.NearbyResponse{
		Count:  len(users),
		Radius: requester.Radius,
		Users:  users,
	}, nil
}
