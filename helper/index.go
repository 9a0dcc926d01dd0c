package helper

import (
	"errors"
	"fmt"
	"time"

	"cinema_booking/constants"
	"cinema_booking/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GenerateAccessToken(secret string, ttl time.Duration, tokenClaim model.TokenClaim) (model.TokenData, error) {
	if secret == "" {
		return model.TokenData{}, errors.New("jwt secret is not configured")
	}
	token := jwt.New(jwt.SigningMethodHS256)
	exp := time.Now().Add(ttl)

	claims := token.Claims.(jwt.MapClaims)
	claims["userId"] = tokenClaim.UserID
	claims["email"] = tokenClaim.Email
	claims["role"] = tokenClaim.Role
	claims["exp"] = exp.Unix()

	t, err := token.SignedString([]byte(secret))
	if err != nil {
		return model.TokenData{}, err
	}
	return model.TokenData{AccessToken: t, ExpiresAt: exp.Unix()}, nil
}

func ParseToken(secret, tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
}

// ClaimFromToken reads the claims written by GenerateAccessToken.
func ClaimFromToken(token *jwt.Token) (model.TokenClaim, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, errors.New(constants.INVALID_TOKEN)
	}
	id, _ := claims["userId"].(float64)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if id == 0 || role == "" {
		return model.TokenClaim{}, errors.New(constants.INVALID_TOKEN)
	}
	return model.TokenClaim{UserID: uint(id), Email: email, Role: role}, nil
}
