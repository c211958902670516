package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrValidation         = errors.New("email and password are required")
)

type Service interface {
	SignUp(ctx context.Context, email, password, displayName string) (User, error)
	SignIn(ctx context.Context, email, password string) (User, string, error)
	GetCurrentUser(ctx context.Context) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateDisplayName(ctx context.Context, displayName string) (User, error)
}

type UserServiceImpl struct {
	repo   Repo
	tokens *TokenIssuer
}

func NewUserService(repo Repo, tokens *TokenIssuer) *UserServiceImpl {
	return &UserServiceImpl{repo: repo, tokens: tokens}
}

func (u *UserServiceImpl) SignUp(ctx context.Context, email, password, displayName string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return User{}, ErrValidation
	}
	if displayName == "" {
		// Mirror the frontend fallback: local part of the email address.
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	if _, err := u.repo.GetUserByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, fmt.Errorf("failed to check email availability: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := User{
		Uid:          uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		Role:         RoleMember,
		PasswordHash: string(hash),
	}
	id, err := u.repo.CreateUser(ctx, newUser)
	if err != nil {
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}
	newUser.Id = id
	return newUser, nil
}

func (u *UserServiceImpl) SignIn(ctx context.Context, email, password string) (User, string, error) {
	account, err := u.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, ErrUserNotFound) {
		return User{}, "", ErrInvalidCredentials
	} else if err != nil {
		return User{}, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(account)
	if err != nil {
		return User{}, "", err
	}
	return account, token, nil
}

func (u *UserServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.repo.GetUser(ctx, userId)
}

func (u *UserServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.repo.GetUserByUid(ctx, uid)
}

func (u *UserServiceImpl) UpdateDisplayName(ctx context.Context, displayName string) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.repo.UpdateUser(ctx, userId, User{DisplayName: displayName})
}
