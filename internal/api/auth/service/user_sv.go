package authService

import (
	"AssistantGolang/internal/api/auth"
	contextPkg "AssistantGolang/pkg/context"
	"context"

	"github.com/sirupsen/logrus"
)

func (s *userDomainImpl) GetProfile(c context.Context, userID string) (auth.UserResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return auth.UserResponse{}, err
	}

	user, err := repo.Users.GetByID(c, userID)
	if err != nil {
		return auth.UserResponse{}, err
	}

	return auth.UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		PhoneNumber:     user.PhoneNumber,
		GoogleConnected: user.GoogleCalendarToken != "",
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}, nil
}

func (s *userDomainImpl) UpdateProfile(c context.Context, userID string, req auth.UpdateProfileRequest) error {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.repo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	user, err := repo.Users.GetByID(c, userID)
	if err != nil {
		return err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.FCMToken != "" {
		user.FCMToken = req.FCMToken
	}

	if err := repo.Users.UpdateUser(c, user); err != nil {
		return err
	}

	return repo.Commit()
}

func (s *userDomainImpl) DeleteUser(c context.Context, userID string) error {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.repo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}
	defer repo.Rollback()

	if err := repo.Users.DeleteUser(c, userID); err != nil {
		return err
	}

	return repo.Commit()
}
