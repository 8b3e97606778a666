package profile

import (
	"context"
	"fmt"

	"github.com/peoplebase/hrm-backend-go/internal/domain/profile"
	"github.com/peoplebase/hrm-backend-go/internal/service/authctx"
)

type ProfileServiceImpl struct {
	profile.ProfileRepository
}

func NewProfileService(profileRepo profile.ProfileRepository) profile.ProfileService {
	return &ProfileServiceImpl{ProfileRepository: profileRepo}
}

// GetMyProfile implements profile.ProfileService.
func (s *ProfileServiceImpl) GetMyProfile(ctx context.Context) (profile.ProfileResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	p, err := s.ProfileRepository.GetByEmployeeID(ctx, actor.EmployeeID)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	return profile.ToProfileResponse(p), nil
}

// GetProfile implements profile.ProfileService.
func (s *ProfileServiceImpl) GetProfile(ctx context.Context, employeeID string) (profile.ProfileResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return profile.ProfileResponse{}, err
	}
	if !actor.CanAccess(employeeID) {
		return profile.ProfileResponse{}, profile.ErrUnauthorized
	}

	p, err := s.ProfileRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	return profile.ToProfileResponse(p), nil
}

// ListProfiles implements profile.ProfileService.
func (s *ProfileServiceImpl) ListProfiles(ctx context.Context) ([]profile.ProfileResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsManager() {
		return nil, profile.ErrUnauthorized
	}

	profiles, err := s.ProfileRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	responses := make([]profile.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, profile.ToProfileResponse(p))
	}

	return responses, nil
}

// UpdatePersonal implements profile.ProfileService. Personal fields are
// writable by the owner or a managing role.
func (s *ProfileServiceImpl) UpdatePersonal(ctx context.Context, req profile.UpdatePersonalRequest) (profile.ProfileResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	if req.EmployeeID == "" {
		req.EmployeeID = actor.EmployeeID
	}
	if !actor.CanAccess(req.EmployeeID) {
		return profile.ProfileResponse{}, profile.ErrUnauthorized
	}

	if err := req.Validate(); err != nil {
		return profile.ProfileResponse{}, err
	}

	if _, err := s.ProfileRepository.GetByEmployeeID(ctx, req.EmployeeID); err != nil {
		return profile.ProfileResponse{}, err
	}

	if err := s.ProfileRepository.UpdatePersonal(ctx, req); err != nil {
		return profile.ProfileResponse{}, fmt.Errorf("failed to update profile: %w", err)
	}

	updated, err := s.ProfileRepository.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	return profile.ToProfileResponse(updated), nil
}

// UpdateJob implements profile.ProfileService. Job and compensation fields
// never accept writes from the owning employee.
func (s *ProfileServiceImpl) UpdateJob(ctx context.Context, req profile.UpdateJobRequest) (profile.ProfileResponse, error) {
	actor, err := authctx.FromContext(ctx)
	if err != nil {
		return profile.ProfileResponse{}, err
	}
	if !actor.IsManager() {
		return profile.ProfileResponse{}, profile.ErrUnauthorized
	}

	if err := req.Validate(); err != nil {
		return profile.ProfileResponse{}, err
	}

	if _, err := s.ProfileRepository.GetByEmployeeID(ctx, req.EmployeeID); err != nil {
		return profile.ProfileResponse{}, err
	}

	if err := s.ProfileRepository.UpdateJob(ctx, req); err != nil {
		return profile.ProfileResponse{}, fmt.Errorf("failed to update job details: %w", err)
	}

	updated, err := s.ProfileRepository.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return profile.ProfileResponse{}, err
	}

	return profile.ToProfileResponse(updated), nil
}
