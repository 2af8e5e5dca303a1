package authService

import (
	"AssistantGolang/internal/api/auth"
	authRepository "AssistantGolang/internal/api/auth/repository"
	"AssistantGolang/internal/entity"
	"AssistantGolang/pkg/bcrypt"
	"AssistantGolang/pkg/google"
	"AssistantGolang/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type AuthService interface {
	Auth() AuthDomain
	User() UserDomain
	Directory() DirectoryDomain
	GetRepository() authRepository.Repository
}

type AuthDomain interface {
	RegisterUser(c context.Context, req auth.RegisterUserRequest) error
	Login(c context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error)
	GoogleConnectURL(userID string) string
	HandleGoogleCallback(c context.Context, userID string, code string) error
}

type UserDomain interface {
	GetProfile(c context.Context, userID string) (auth.UserResponse, error)
	UpdateProfile(c context.Context, userID string, req auth.UpdateProfileRequest) error
	DeleteUser(c context.Context, userID string) error
}

// DirectoryDomain is the identity directory voice commands resolve spoken
// names against.
type DirectoryDomain interface {
	ResolveByName(c context.Context, name string) (entity.User, error)
	ListNames(c context.Context) ([]string, error)
	GetByID(c context.Context, id string) (entity.User, error)
}

type authService struct {
	log            *logrus.Logger
	authRepository authRepository.Repository

	authDomain      AuthDomain
	userDomain      UserDomain
	directoryDomain DirectoryDomain
}

func (a *authService) Auth() AuthDomain {
	return a.authDomain
}

func (a *authService) User() UserDomain {
	return a.userDomain
}

func (a *authService) Directory() DirectoryDomain {
	return a.directoryDomain
}

func (a *authService) GetRepository() authRepository.Repository {
	return a.authRepository
}

type authDomainImpl struct {
	log            *logrus.Logger
	repo           authRepository.Repository
	googleProvider google.ItfGoogle
	bcryptUtils    bcrypt.IBcrypt
	utils          utils.IUtils
}

type userDomainImpl struct {
	log  *logrus.Logger
	repo authRepository.Repository
}

type directoryDomainImpl struct {
	log  *logrus.Logger
	repo authRepository.Repository
}

func New(log *logrus.Logger,
	authRepo authRepository.Repository,
	googleProvider google.ItfGoogle,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
) AuthService {
	return &authService{
		log:            log,
		authRepository: authRepo,

		authDomain:      &authDomainImpl{log: log, repo: authRepo, googleProvider: googleProvider, bcryptUtils: bcryptUtils, utils: utils},
		userDomain:      &userDomainImpl{log: log, repo: authRepo},
		directoryDomain: &directoryDomainImpl{log: log, repo: authRepo},
	}
}
