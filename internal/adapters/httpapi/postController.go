package httpapi

import (
	"net/http"

	postPort "blog/internal/ports/post"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostController struct {
	pc  PostUseCase
	log *zap.Logger
}

func NewPostController(pc PostUseCase, log *zap.Logger) *PostController {
	return &PostController{pc: pc, log: log}
}

// postRequest is the body of both POST and PUT.
type postRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=100"`
	Content string `json:"content" binding:"required,min=1"`
	UserID  uint   `json:"user_id" binding:"required,gt=0"`
}

type patchPostRequest struct {
	Title   *string `json:"title" binding:"omitnil,min=1,max=100"`
	Content *string `json:"content" binding:"omitnil,min=1"`
	UserID  *uint   `json:"user_id" binding:"omitnil,gt=0"`
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req postRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, ctl.log, err)
		return
	}
	p, err := ctl.pc.CreatePost(c.Request.Context(), postPort.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
		UserID:  req.UserID,
	})
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (ctl *PostController) GetPost(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	p, err := ctl.pc.GetPost(c.Request.Context(), id)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ctl *PostController) ListPosts(c *gin.Context) {
	posts, err := ctl.pc.ListPosts(c.Request.Context())
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *PostController) ListUserPosts(c *gin.Context) {
	userID, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	posts, err := ctl.pc.ListPostsByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (ctl *PostController) UpdatePost(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	var req postRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, ctl.log, err)
		return
	}
	p, err := ctl.pc.UpdatePost(c.Request.Context(), id, postPort.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
		UserID:  req.UserID,
	})
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ctl *PostController) PatchPost(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	var req patchPostRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, ctl.log, err)
		return
	}
	p, err := ctl.pc.PatchPost(c.Request.Context(), id, postPort.PatchPostInput{
		Title:   req.Title,
		Content: req.Content,
		UserID:  req.UserID,
	})
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	if err := ctl.pc.DeletePost(c.Request.Context(), id); err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
