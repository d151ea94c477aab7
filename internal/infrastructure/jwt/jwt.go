package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fileshare-api/internal/application/ports"
	"fileshare-api/internal/domain/user"
)

type Service struct {
	jwtSecret string
}

func New(jwtSecret string) *Service { return &Service{jwtSecret: jwtSecret} }

type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (s *Service) GenerateJWT(userID user.ID, username string, expiresIn time.Duration) (string, error) {
	claims := Claims{
		UserID:   strconv.FormatUint(uint64(userID), 10),
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.jwtSecret))
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

// Verify implements ports.IdentityVerifier: any defect in the credential
// resolves to anonymous, never to an error.
func (s *Service) Verify(credential string) (*ports.Identity, bool) {
	claims, err := s.ValidateToken(credential)
	if err != nil {
		return nil, false
	}
	id, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil {
		return nil, false
	}

	return &ports.Identity{
		UserID:   user.ID(id),
		Username: claims.Username,
	}, true
}
