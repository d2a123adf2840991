package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var usernameUnsafe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// UserService is the user directory: accounts, credentials and profiles.
type UserService struct {
	users         repositories.UserRepository
	follows       repositories.FollowRepository
	notifications repositories.NotificationRepository
	logger        *zap.Logger
}

func NewUserService(users repositories.UserRepository, follows repositories.FollowRepository, notifications repositories.NotificationRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, follows: follows, notifications: notifications, logger: logger}
}

// Register creates a local account with a bcrypt password hash.
func (s *UserService) Register(ctx context.Context, req models.CreateLocalUserRequest) (*models.User, error) {
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", ErrInvalid)
	}
	if _, err := s.users.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username already exists", ErrConflict)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: email already exists", ErrConflict)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username or email already exists", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

// Authenticate checks a username or email against the stored password hash.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = s.users.GetUserByEmail(ctx, login)
	} else {
		user, err = s.users.GetUserByUsername(ctx, login)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// FirebaseIdentity is the subset of a verified Firebase ID token used to resolve a local user.
type FirebaseIdentity struct {
	UID           string
	Email         string
	EmailVerified bool
	DisplayName   string
}

// LinkFirebaseUser resolves a verified Firebase identity to a local user: by UID first, then by
// email (attaching the UID), and otherwise by creating a new account. An existing account is
// only claimed by email when Firebase has verified that email; otherwise the email collision
// is ErrConflict.
func (s *UserService) LinkFirebaseUser(ctx context.Context, identity FirebaseIdentity) (*models.User, error) {
	firebaseUID, email, displayName := identity.UID, identity.Email, identity.DisplayName
	user, err := s.users.GetUserByFirebaseUID(ctx, firebaseUID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	if email != "" {
		user, err = s.users.GetUserByEmail(ctx, email)
		if err == nil {
			if !identity.EmailVerified {
				return nil, fmt.Errorf("%w: email belongs to another account and is not verified", ErrConflict)
			}
			user.FirebaseUID = &firebaseUID
			if err := s.users.UpdateUser(ctx, user); err != nil {
				return nil, err
			}
			return user, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
	}

	username, err := s.availableUsername(ctx, displayName, email)
	if err != nil {
		return nil, err
	}
	if email == "" {
		email = firebaseUID + "@firebase.invalid"
	}
	user = &models.User{
		Username:    username,
		Email:       email,
		FirebaseUID: &firebaseUID,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account already exists", ErrConflict)
		}
		return nil, err
	}
	s.logger.Info("created user from firebase identity", zap.Uint("user_id", user.ID))
	return user, nil
}

func (s *UserService) availableUsername(ctx context.Context, displayName, email string) (string, error) {
	base := displayName
	if base == "" {
		base, _, _ = strings.Cut(email, "@")
	}
	base = usernameUnsafe.ReplaceAllString(base, "")
	if base == "" {
		base = "user"
	}
	if len(base) > 140 {
		base = base[:140]
	}

	candidate := base
	for range 5 {
		_, err := s.users.GetUserByUsername(ctx, candidate)
		if errors.Is(err, repositories.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = base + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	}
	return "", fmt.Errorf("%w: could not derive a free username", ErrConflict)
}

// GetUser returns the user or ErrNotFound.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return user, nil
}

// Profile returns the user with its follower and following counts.
func (s *UserService) Profile(ctx context.Context, id uint) (*models.UserProfile, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	followers, err := s.follows.GetFollowersCount(ctx, id)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.GetFollowingCount(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.UserProfile{User: *user, FollowersCount: followers, FollowingCount: following}, nil
}

// UpdateProfile applies the non-empty fields of req to the requester's own account.
func (s *UserService) UpdateProfile(ctx context.Context, requesterID uint, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = *req.ProfilePicture
	}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already exists", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account and cascades over its content, follow edges and notifications.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return notFound(err, "user", id)
	}
	if err := s.notifications.DeleteInvolvingUser(ctx, id); err != nil {
		return fmt.Errorf("delete notifications of user %d: %w", id, err)
	}
	return nil
}

// SearchUsers matches query against usernames and emails.
func (s *UserService) SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrInvalid)
	}
	return s.users.SearchUsers(ctx, query, limit)
}
