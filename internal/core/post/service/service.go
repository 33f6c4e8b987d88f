package postapp

import (
	"context"
	"errors"
	"fmt"

	"blog/internal/core/apperror"
	postEntity "blog/internal/core/post"
	cachePort "blog/internal/ports/cache"
	"blog/internal/ports/clock"
	postPort "blog/internal/ports/post"
	userPort "blog/internal/ports/user"

	"go.uber.org/zap"
)

type PostService struct {
	PostRepository postPort.PostRepository
	UserRepository userPort.UserRepository // owner lookups
	Cache          cachePort.RecordCache
	Clock          clock.Clock
	Logger         *zap.Logger
}

func NewPostService(
	postRepo postPort.PostRepository,
	userRepo userPort.UserRepository,
	cache cachePort.RecordCache,
	clk clock.Clock,
	logger *zap.Logger,
) *PostService {
	if cache == nil {
		cache = cachePort.Disabled{}
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &PostService{
		PostRepository: postRepo,
		UserRepository: userRepo,
		Cache:          cache,
		Clock:          clk,
		Logger:         logger,
	}
}

// CreatePost stores a post for an existing user, stamped with the current UTC time.
func (s *PostService) CreatePost(ctx context.Context, in postPort.CreatePostInput) (*postPort.PostDTO, error) {
	if err := s.requireUser(ctx, in.UserID); err != nil {
		return nil, err
	}

	created, err := s.PostRepository.Create(ctx, &postEntity.Post{
		Title:      in.Title,
		Content:    in.Content,
		UserID:     in.UserID,
		DatePosted: s.Clock.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.Logger.Info("Post created", zap.Uint("postID", created.ID), zap.Uint("userID", created.UserID))
	return postPort.ToDTO(created), nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*postPort.PostDTO, error) {
	var cached postPort.PostDTO
	if err := s.Cache.Get(ctx, cachePort.PostKey(id), &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cachePort.ErrMiss) {
		s.Logger.Warn("Post cache read failed", zap.Uint("postID", id), zap.Error(err))
	}

	p, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := postPort.ToDTO(p)
	if err := s.Cache.Set(ctx, cachePort.PostKey(id), dto); err != nil {
		s.Logger.Warn("Post cache write failed", zap.Uint("postID", id), zap.Error(err))
	}
	return dto, nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]*postPort.PostDTO, error) {
	posts, err := s.PostRepository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return postPort.ToDTOs(posts), nil
}

func (s *PostService) ListPostsByUser(ctx context.Context, userID uint) ([]*postPort.PostDTO, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	posts, err := s.PostRepository.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list posts of user %d: %w", userID, err)
	}
	return postPort.ToDTOs(posts), nil
}

// UpdatePost replaces title, content and owner. A changed owner must exist.
func (s *PostService) UpdatePost(ctx context.Context, id uint, in postPort.UpdatePostInput) (*postPort.PostDTO, error) {
	p, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.UserID != p.UserID {
		if err := s.requireUser(ctx, in.UserID); err != nil {
			return nil, err
		}
	}

	p.Title = in.Title
	p.Content = in.Content
	p.UserID = in.UserID
	return s.save(ctx, p)
}

// PatchPost applies only the fields present in the input.
func (s *PostService) PatchPost(ctx context.Context, id uint, in postPort.PatchPostInput) (*postPort.PostDTO, error) {
	p, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title == nil && in.Content == nil && in.UserID == nil {
		return postPort.ToDTO(p), nil
	}

	if in.UserID != nil && *in.UserID != p.UserID {
		if err := s.requireUser(ctx, *in.UserID); err != nil {
			return nil, err
		}
		p.UserID = *in.UserID
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	return s.save(ctx, p)
}

func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	if _, err := s.findPost(ctx, id); err != nil {
		return err
	}

	if err := s.PostRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, postPort.ErrNotFound) {
			return apperror.NotFound("Post not found")
		}
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	s.invalidate(ctx, id)

	s.Logger.Info("Post deleted", zap.Uint("postID", id))
	return nil
}

func (s *PostService) save(ctx context.Context, p *postEntity.Post) (*postPort.PostDTO, error) {
	saved, err := s.PostRepository.Save(ctx, p)
	if err != nil {
		if errors.Is(err, postPort.ErrNotFound) {
			return nil, apperror.NotFound("Post not found")
		}
		return nil, fmt.Errorf("save post %d: %w", p.ID, err)
	}
	s.invalidate(ctx, saved.ID)
	return postPort.ToDTO(saved), nil
}

func (s *PostService) findPost(ctx context.Context, id uint) (*postEntity.Post, error) {
	p, err := s.PostRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, postPort.ErrNotFound) {
			return nil, apperror.NotFound("Post not found")
		}
		return nil, fmt.Errorf("find post %d: %w", id, err)
	}
	return p, nil
}

func (s *PostService) requireUser(ctx context.Context, userID uint) error {
	if _, err := s.UserRepository.FindByID(ctx, userID); err != nil {
		if errors.Is(err, userPort.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return fmt.Errorf("find user %d: %w", userID, err)
	}
	return nil
}

func (s *PostService) invalidate(ctx context.Context, id uint) {
	if err := s.Cache.Invalidate(ctx, cachePort.PostKey(id)); err != nil {
		s.Logger.Warn("Post cache invalidation failed", zap.Uint("postID", id), zap.Error(err))
	}
}
