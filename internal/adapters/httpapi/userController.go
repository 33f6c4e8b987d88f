package httpapi

import (
	"net/http"

	userPort "blog/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct {
	uc  UserUseCase
	log *zap.Logger
}

func NewUserController(uc UserUseCase, log *zap.Logger) *UserController {
	return &UserController{uc: uc, log: log}
}

type createUserRequest struct {
	Username  string  `json:"username" binding:"required,min=1,max=50"`
	Email     string  `json:"email" binding:"required,email,max=120"`
	ImageFile *string `json:"image_file" binding:"omitnil,min=1,max=200"`
}

func (ctl *UserController) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, ctl.log, err)
		return
	}
	u, err := ctl.uc.CreateUser(c.Request.Context(), userPort.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		ImageFile: req.ImageFile,
	})
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (ctl *UserController) GetUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	u, err := ctl.uc.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (ctl *UserController) ListUsers(c *gin.Context) {
	users, err := ctl.uc.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (ctl *UserController) DeleteUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	if err := ctl.uc.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, ctl.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
