package service

import (
	"strings"

	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/itchan-dev/simpleboard/shared/errors"
	"github.com/itchan-dev/simpleboard/shared/logger"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(email, password string) (string, error)
}

type Jwt interface {
	NewToken(admin domain.Admin) (string, error)
}

// Auth checks the single admin credential from the private config.
type Auth struct {
	jwt          Jwt
	adminEmail   string
	passwordHash []byte
}

func NewAuth(jwt Jwt, adminEmail, passwordHash string) *Auth {
	return &Auth{
		jwt:          jwt,
		adminEmail:   strings.ToLower(strings.TrimSpace(adminEmail)),
		passwordHash: []byte(passwordHash),
	}
}

func (a *Auth) Login(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	// compare the hash even for an unknown email so both paths cost the same
	hashErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
	if email != a.adminEmail || hashErr != nil {
		logger.Log.Warn("failed admin login", "email", email)
		return "", &errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: 401}
	}

	token, err := a.jwt.NewToken(domain.Admin{Email: a.adminEmail})
	if err != nil {
		return "", err
	}
	logger.Log.Info("admin logged in", "email", email)
	return token, nil
}
