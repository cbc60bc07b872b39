package services

import (
	"errors"

	"github.com/ternovka/medbell/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password too short")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, bool, error)
	FindByID(userID uint) (models.User, bool, error)
	Create(user *models.User) error
}

// AuthService covers the account boundary the scheduling engine itself never
// touches: caregiver registration, caregiver-created patient accounts, and
// password login.
type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func (service *AuthService) RegisterCaregiver(name string, email string, password string, paidPlan bool) (models.User, error) {
	plan := models.PlanFree
	if paidPlan {
		plan = models.PlanPaid
	}
	return service.register(models.User{
		Name: name,
		Role: models.RoleCaregiver,
		Plan: plan,
	}, email, password)
}

func (service *AuthService) RegisterPatient(caregiver *models.User, name string, email string, password string) (models.User, error) {
	return service.register(models.User{
		Name:        name,
		Role:        models.RolePatient,
		CaregiverID: &caregiver.ID,
	}, email, password)
}

func (service *AuthService) Authenticate(email string, password string) (models.User, error) {
	user, found, err := service.users.FindByNormalizedEmail(NormalizeEmail(email))
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, bool, error) {
	return service.users.FindByID(userID)
}

func (service *AuthService) register(user models.User, email string, password string) (models.User, error) {
	if !ValidEmail(email) {
		return models.User{}, ErrInvalidEmail
	}
	if !ValidPassword(password) {
		return models.User{}, ErrWeakPassword
	}

	normalized := NormalizeEmail(email)
	exists, err := service.users.ExistsByNormalizedEmail(normalized)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user.Email = normalized
	user.PasswordHash = string(passwordHash)
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
