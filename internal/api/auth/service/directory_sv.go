package authService

import (
	"AssistantGolang/internal/api/auth"
	"AssistantGolang/internal/entity"
	contextPkg "AssistantGolang/pkg/context"
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// ResolveByName maps a spoken name fragment to a directory entry. Partial
// case-insensitive match wins; an exact case-insensitive lookup is the
// fallback for fragments the pattern search missed.
func (s *directoryDomainImpl) ResolveByName(c context.Context, name string) (entity.User, error) {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return entity.User{}, err
	}

	matches, err := repo.Users.SearchByName(c, name)
	if err != nil {
		return entity.User{}, err
	}
	if len(matches) > 0 {
		return matches[0], nil
	}

	user, err := repo.Users.GetByNameExact(c, name)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"name":       name,
			}).Warn("No directory entry for spoken name")
		}
		return entity.User{}, err
	}

	return user, nil
}

func (s *directoryDomainImpl) ListNames(c context.Context) ([]string, error) {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	return repo.Users.ListNames(c)
}

func (s *directoryDomainImpl) GetByID(c context.Context, id string) (entity.User, error) {
	repo, err := s.repo.NewClient(false)
	if err != nil {
		return entity.User{}, err
	}

	return repo.Users.GetByID(c, id)
}
