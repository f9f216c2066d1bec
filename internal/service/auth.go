package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/violethawk/server/internal/logger"
	"github.com/violethawk/server/internal/model"
	"github.com/violethawk/server/internal/salt"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

const passwordSpecials = "#?!@$%^&*-"

// AuthPolicy carries the registration and login policy switches.
type AuthPolicy struct {
	EnableAccountCreation bool
	EnableBearerAuth      bool
	ForceComplexPasswords bool
}

// Auth handles registration, login and password changes. It is the
// only place the credential codec and token issuance are invoked.
type Auth struct {
	users  model.UserStore
	codec  *salt.Codec
	tokens model.TokenManager
	clock  model.Clock
	policy AuthPolicy
	logger *logger.Logger
}

// NewAuth creates the auth service.
func NewAuth(
	users model.UserStore,
	codec *salt.Codec,
	tokens model.TokenManager,
	clock model.Clock,
	policy AuthPolicy,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:  users,
		codec:  codec,
		tokens: tokens,
		clock:  clock,
		policy: policy,
		logger: logger,
	}
}

// RegisterParams contains the registration request fields.
type RegisterParams struct {
	ScreenName string
	Email      string
	Phone      string
	Password   string
}

// Register creates a new user with a freshly generated credential
// record. The plaintext password never leaves this call.
func (a *Auth) Register(ctx context.Context, params RegisterParams) (model.User, error) {
	if !a.policy.EnableAccountCreation {
		return model.User{}, fmt.Errorf("%w: account registration disabled", model.ErrForbidden)
	}
	if !emailPattern.MatchString(params.Email) {
		return model.User{}, fmt.Errorf("%w: %q is not a valid email address", model.ErrMalformedInput, params.Email)
	}
	if a.policy.ForceComplexPasswords && !passwordIsComplex(params.Password) {
		return model.User{}, fmt.Errorf("%w: password must have at least 8 characters, 1 upper case, 1 lower case, 1 number and 1 special character", model.ErrMalformedInput)
	}

	_, err := a.users.GetByEmail(ctx, params.Email)
	if err == nil {
		a.logger.Info("Auth service: user already exists", "email", params.Email)
		return model.User{}, fmt.Errorf("%w: user with email %s", model.ErrDuplicate, params.Email)
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	cred, err := a.makeCredential(params.Password)
	if err != nil {
		return model.User{}, err
	}

	now := a.clock.Now()
	user := model.User{
		ID:         uuid.New(),
		ScreenName: params.ScreenName,
		Email:      params.Email,
		Phone:      params.Phone,
		Credential: cred,
		JoinDate:   now,
		LastSeen:   now,
	}

	created, err := a.users.Create(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"user_id", created.ID,
		"email", created.Email)

	return created, nil
}

// Login authenticates by email and password and issues an access token
// bound to the client's network address. A non-positive ttl uses the
// configured default lifetime.
func (a *Auth) Login(ctx context.Context, email, password, clientIP string, ttl time.Duration) (string, error) {
	if !a.policy.EnableBearerAuth {
		return "", fmt.Errorf("%w: token authentication disabled", model.ErrForbidden)
	}

	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return "", fmt.Errorf("%w: incorrect email or password", model.ErrUnauthorized)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if !a.codec.Verify(password, user.Credential.Salt, user.Credential.SaltPos, user.Credential.PasswordHash) {
		a.logger.Info("Auth service: password verification failed", "email", email)
		return "", fmt.Errorf("%w: incorrect email or password", model.ErrUnauthorized)
	}

	tokenString, err := a.tokens.Issue(user.ID, clientIP, ttl)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	if err := a.users.TouchLastSeen(ctx, user.ID, a.clock.Now()); err != nil {
		// Login still succeeds; last-seen is best effort.
		a.logger.Error("Auth service: failed to update last seen",
			"user_id", user.ID,
			"error", err.Error())
	}

	a.logger.Info("Auth service: login succeeded", "user_id", user.ID, "client_ip", clientIP)

	return tokenString, nil
}

// ChangePassword verifies the current password and replaces the whole
// credential record with a freshly salted and hashed one.
func (a *Auth) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if !a.codec.Verify(current, user.Credential.Salt, user.Credential.SaltPos, user.Credential.PasswordHash) {
		return fmt.Errorf("%w: current password does not match", model.ErrUnauthorized)
	}
	if a.policy.ForceComplexPasswords && !passwordIsComplex(next) {
		return fmt.Errorf("%w: password must have at least 8 characters, 1 upper case, 1 lower case, 1 number and 1 special character", model.ErrMalformedInput)
	}

	cred, err := a.makeCredential(next)
	if err != nil {
		return err
	}

	if err := a.users.ReplaceCredential(ctx, userID, cred); err != nil {
		return fmt.Errorf("failed to replace credential: %w", err)
	}

	a.logger.Info("Auth service: password changed", "user_id", userID)

	return nil
}

func (a *Auth) makeCredential(password string) (model.Credential, error) {
	s, pos, err := a.codec.GenerateSalt(len(password))
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to generate salt: %w", err)
	}
	salted, err := a.codec.Apply(password, s, pos)
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to apply salt: %w", err)
	}
	hash, err := a.codec.Hash(salted)
	if err != nil {
		return model.Credential{}, fmt.Errorf("failed to hash password: %w", err)
	}
	return model.Credential{Salt: s, SaltPos: pos, PasswordHash: hash}, nil
}

// passwordIsComplex checks the minimum complexity rule: 8+ characters
// with at least one upper, one lower, one digit and one special.
func passwordIsComplex(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && lower && digit && special
}
