package userapp

import (
	"context"
	"errors"
	"fmt"

	"blog/internal/core/apperror"
	userEntity "blog/internal/core/user"
	cachePort "blog/internal/ports/cache"
	userPort "blog/internal/ports/user"

	"go.uber.org/zap"
)

// UserService manages blog users.
type UserService struct {
	UserRepository userPort.UserRepository
	Cache          cachePort.RecordCache
	Logger         *zap.Logger
}

func NewUserService(
	userRepo userPort.UserRepository,
	cache cachePort.RecordCache,
	logger *zap.Logger,
) *UserService {
	if cache == nil {
		cache = cachePort.Disabled{}
	}
	return &UserService{
		UserRepository: userRepo,
		Cache:          cache,
		Logger:         logger,
	}
}

// CreateUser registers a new user. Username and email are checked separately so
// the client learns which one is taken.
func (s *UserService) CreateUser(ctx context.Context, in userPort.CreateUserInput) (*userPort.UserDTO, error) {
	if _, err := s.UserRepository.FindByUsername(ctx, in.Username); err == nil {
		return nil, apperror.Conflict("Username already exists")
	} else if !errors.Is(err, userPort.ErrNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if _, err := s.UserRepository.FindByEmail(ctx, in.Email); err == nil {
		return nil, apperror.Conflict("Email already exists")
	} else if !errors.Is(err, userPort.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		Username:  in.Username,
		Email:     in.Email,
		ImageFile: in.ImageFile,
	})
	if err != nil {
		if errors.Is(err, userPort.ErrDuplicate) {
			return nil, apperror.Conflict("Username or email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.Logger.Info("User created", zap.Uint("userID", u.ID), zap.String("username", u.Username))
	return userPort.ToDTO(u), nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*userPort.UserDTO, error) {
	var cached userPort.UserDTO
	if err := s.Cache.Get(ctx, cachePort.UserKey(id), &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cachePort.ErrMiss) {
		s.Logger.Warn("User cache read failed", zap.Uint("userID", id), zap.Error(err))
	}

	u, err := s.UserRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userPort.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}

	dto := userPort.ToDTO(u)
	if err := s.Cache.Set(ctx, cachePort.UserKey(id), dto); err != nil {
		s.Logger.Warn("User cache write failed", zap.Uint("userID", id), zap.Error(err))
	}
	return dto, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*userPort.UserDTO, error) {
	users, err := s.UserRepository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]*userPort.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, userPort.ToDTO(u))
	}
	return out, nil
}

// DeleteUser removes the user and, in the same transaction, all of the user's posts.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	postIDs, err := s.UserRepository.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, userPort.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	keys := make([]string, 0, len(postIDs)+1)
	keys = append(keys, cachePort.UserKey(id))
	for _, pid := range postIDs {
		keys = append(keys, cachePort.PostKey(pid))
	}
	if err := s.Cache.Invalidate(ctx, keys...); err != nil {
		s.Logger.Warn("Cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}

	s.Logger.Info("User deleted", zap.Uint("userID", id), zap.Int("posts", len(postIDs)))
	return nil
}
