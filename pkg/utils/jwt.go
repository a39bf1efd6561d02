package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

const (
	RoleParent    = "parent"
	RoleCaregiver = "caregiver"
)

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	// Set only on caregiver-mode tokens: the child whose passcode was
	// verified. Caregiver actions are scoped to this child.
	ChildID string `json:"child_id,omitempty"`
	jwt.RegisteredClaims
}

func CreateToken(userId uuid.UUID, role string) (string, error) {
	return signClaims(&Claims{
		UserID: userId.String(),
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute * 60)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// CreateCaregiverToken issues a short-lived token carrying the caregiver
// role for one child. Produced only after a successful passcode check.
func CreateCaregiverToken(userId, childId uuid.UUID) (string, error) {
	return signClaims(&Claims{
		UserID:  userId.String(),
		Role:    RoleCaregiver,
		ChildID: childId.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute * 30)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

func signClaims(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})

	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
