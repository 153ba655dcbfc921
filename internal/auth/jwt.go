package auth

import (
	"errors"
	"os"
	"time"

	"github.com/dkorolev/petalmarket/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// jwtSecret returns the signing key. Read from the environment so the
// same binary works across deployments; the fallback keeps local dev
// running without a .env file.
func jwtSecret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("dev_only_jwt_secret_change_me")
}

// GenerateToken creates a JWT for a verified actor. The "kind" claim
// records which side of the marketplace the subject belongs to, so a
// customer token can never be replayed against shop-only routes.
func GenerateToken(actorID int64, kind models.ActorKind) (string, error) {
	claims := jwt.MapClaims{
		"sub":  actorID,
		"kind": string(kind),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ValidateToken parses and validates a token string and returns the
// actor it identifies.
func ValidateToken(tokenString string) (models.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return models.Actor{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Actor{}, errors.New("invalid token")
	}

	// JSON numbers decode as float64
	sub, ok := claims["sub"].(float64)
	if !ok {
		return models.Actor{}, errors.New("invalid subject claim")
	}

	kindStr, ok := claims["kind"].(string)
	if !ok {
		return models.Actor{}, errors.New("invalid kind claim")
	}
	kind := models.ActorKind(kindStr)
	if kind != models.ActorCustomer && kind != models.ActorShop {
		return models.Actor{}, errors.New("unknown actor kind")
	}

	return models.Actor{ID: int64(sub), Kind: kind}, nil
}
