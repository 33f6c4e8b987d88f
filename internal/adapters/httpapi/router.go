package httpapi

import (
	"context"
	"net/http"
	"time"

	"blog/internal/adapters/httpapi/middleware"
	postPort "blog/internal/ports/post"
	userPort "blog/internal/ports/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserUseCase is the inbound port the user controller depends on.
type UserUseCase interface {
	CreateUser(ctx context.Context, in userPort.CreateUserInput) (*userPort.UserDTO, error)
	GetUser(ctx context.Context, id uint) (*userPort.UserDTO, error)
	ListUsers(ctx context.Context) ([]*userPort.UserDTO, error)
	DeleteUser(ctx context.Context, id uint) error
}

type PostUseCase interface {
	CreatePost(ctx context.Context, in postPort.CreatePostInput) (*postPort.PostDTO, error)
	GetPost(ctx context.Context, id uint) (*postPort.PostDTO, error)
	ListPosts(ctx context.Context) ([]*postPort.PostDTO, error)
	ListPostsByUser(ctx context.Context, userID uint) ([]*postPort.PostDTO, error)
	UpdatePost(ctx context.Context, id uint, in postPort.UpdatePostInput) (*postPort.PostDTO, error)
	PatchPost(ctx context.Context, id uint, in postPort.PatchPostInput) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, id uint) error
}

// RouterOptions configures the cross-cutting middleware.
type RouterOptions struct {
	Logger             *zap.Logger
	AllowedOrigins     []string
	RateLimitPerMinute int
	// HealthCheck backs GET /health; nil always reports ok.
	HealthCheck func(ctx context.Context) error
}

// SetupRoutes only wires routes; the use cases are injected from outside.
func SetupRoutes(userUC UserUseCase, postUC PostUseCase, opts RouterOptions) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	useJSONFieldNames()

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recovery(log))
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	r.GET("/health", func(c *gin.Context) {
		if opts.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := opts.HealthCheck(ctx); err != nil {
				log.Warn("Health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	uc := NewUserController(userUC, log)
	pc := NewPostController(postUC, log)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(opts.RateLimitPerMinute))

	// users
	api.POST("/users", uc.CreateUser)
	api.GET("/users", uc.ListUsers)
	api.GET("/allUsers", uc.ListUsers)
	api.GET("/users/:id", uc.GetUser)
	api.DELETE("/users/:id", uc.DeleteUser)
	api.GET("/users/:id/posts", pc.ListUserPosts)

	// posts
	api.POST("/posts", pc.CreatePost)
	api.GET("/posts", pc.ListPosts)
	api.GET("/allPosts", pc.ListPosts)
	api.GET("/post/:id", pc.GetPost)
	api.GET("/posts/:id", pc.GetPost)
	api.PUT("/posts/:id", pc.UpdatePost)
	api.PATCH("/posts/:id", pc.PatchPost)
	api.DELETE("/posts/:id", pc.DeletePost)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
