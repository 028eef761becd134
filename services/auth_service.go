package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"cafebot/entity"
	"cafebot/repository"
	"cafebot/utils"
)

// AuthService exchanges the gateway's shared secret plus an end-user identity
// for a session JWT. Users are created lazily here on their first contact.
type AuthService struct {
	Users             *repository.UserRepository
	GatewaySecretHash string
	JWTSecret         string
	JWTTTL            time.Duration
	StaffIDs          []int64
}

func NewAuthService(users *repository.UserRepository, gatewaySecretHash, jwtSecret string, ttl time.Duration, staffIDs []int64) *AuthService {
	return &AuthService{
		Users:             users,
		GatewaySecretHash: gatewaySecretHash,
		JWTSecret:         jwtSecret,
		JWTTTL:            ttl,
		StaffIDs:          staffIDs,
	}
}

// IsStaff reports whether an external id belongs to the configured staff set.
func (s *AuthService) IsStaff(telegramID int64) bool {
	for _, id := range s.StaffIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

// OpenSession verifies the gateway secret, upserts the user and issues a JWT
// carrying the user's db id and staff flag.
func (s *AuthService) OpenSession(gatewaySecret string, telegramID int64, username *string, firstName string) (string, *entity.User, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.GatewaySecretHash), []byte(gatewaySecret)); err != nil {
		return "", nil, errors.New("invalid gateway secret")
	}

	user, err := s.Users.GetOrCreate(telegramID, username, firstName)
	if err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateToken(user.ID, s.IsStaff(telegramID), s.JWTSecret, s.JWTTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}
	return token, user, nil
}
