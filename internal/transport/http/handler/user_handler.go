package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-user-group-api/internal/domain"
	"go-user-group-api/internal/service"
	resp "go-user-group-api/internal/transport/http/response"
	"go-user-group-api/pkg/utils"
)

const (
	defaultLimit  = 10
	defaultOffset = 0
)

type UserHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserHandler(svc *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

type createUserReq struct {
	Login    string   `json:"login" binding:"required,min=3,max=20"`
	Password string   `json:"password" binding:"required"`
	Age      int      `json:"age" binding:"required,min=4,max=130"`
	Groups   []string `json:"groups"`
}

type updateUserReq struct {
	Login       string   `json:"login" binding:"omitempty,min=3,max=20"`
	Password    string   `json:"password"`
	OldPassword string   `json:"oldPassword"`
	Age         *int     `json:"age" binding:"omitempty,min=4,max=130"`
	Groups      []string `json:"groups"`
}

// pageOut 分页包络：currentPage = offset+1，lastPage = ceil(count/limit)
type pageOut struct {
	Data        []domain.User `json:"data"`
	Count       int64         `json:"count"`
	CurrentPage int           `json:"currentPage"`
	NextPage    *int          `json:"nextPage"`
	PrevPage    *int          `json:"prevPage"`
	LastPage    int           `json:"lastPage"`
}

func paginate(data []domain.User, count int64, limit, offset int) pageOut {
	currentPage := offset + 1
	lastPage := int((count + int64(limit) - 1) / int64(limit))
	out := pageOut{Data: data, Count: count, CurrentPage: currentPage, LastPage: lastPage}
	if next := currentPage + 1; next <= lastPage {
		out.NextPage = &next
	}
	if prev := currentPage - 1; prev >= 1 {
		out.PrevPage = &prev
	}
	if out.Data == nil {
		out.Data = []domain.User{}
	}
	return out
}

func (h *UserHandler) Create(c *gin.Context) {
	var in createUserReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	in.Login = strings.TrimSpace(in.Login)
	if !utils.ValidPassword(in.Password) {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "password must be 4-10 chars with a digit, lower and upper case"))
		return
	}

	u, err := h.svc.CreateUser(c, service.CreateUserInput{
		Login:    in.Login,
		Password: in.Password,
		Age:      in.Age,
		Groups:   in.Groups,
	})
	if errors.Is(err, domain.ErrConflict) {
		msg := fmt.Sprintf("Login %s already exists", in.Login)
		logFail(h.log, "createUser", gin.H{"login": in.Login}, msg)
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, msg))
		return
	}
	if err != nil {
		logFail(h.log, "createUser", gin.H{"login": in.Login}, err.Error())
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(u))
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	u, err := h.svc.GetUserByID(c, id)
	if errors.Is(err, domain.ErrNotFound) {
		msg := fmt.Sprintf("User with %s doesn't exist", id)
		logFail(h.log, "getUserByID", gin.H{"id": id}, msg)
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, msg))
		return
	}
	if err != nil {
		logFail(h.log, "getUserByID", gin.H{"id": id}, err.Error())
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(u))
}

func (h *UserHandler) Search(c *gin.Context) {
	loginSubstring := c.Query("loginSubstring")
	order := c.DefaultQuery("order", "ASC")
	limit := atoiDefault(c.Query("limit"), defaultLimit, 1)
	offset := atoiDefault(c.Query("offset"), defaultOffset, 0)

	res, err := h.svc.Search(c, domain.SearchParams{
		LoginSubstring: loginSubstring,
		Offset:         offset,
		Limit:          limit,
		Order:          order,
	})
	if err != nil {
		logFail(h.log, "getUsersByParams", gin.H{"loginSubstring": loginSubstring}, err.Error())
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(paginate(res.Data, res.Count, limit, offset)))
}

func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var in updateUserReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	if in.Password != "" && !utils.ValidPassword(in.Password) {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "password must be 4-10 chars with a digit, lower and upper case"))
		return
	}

	// 改密码必须同时带新旧两个；旧密码在这里先过闸再进服务层
	if (in.Password == "") != (in.OldPassword == "") {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, "Missing parameters for updating password"))
		return
	}
	if in.Password != "" && in.OldPassword != "" {
		check, err := h.svc.CheckLogin(c, domain.Credentials{ID: id, Password: in.OldPassword})
		if errors.Is(err, domain.ErrNotFound) {
			msg := fmt.Sprintf("User with %s doesn't exist", id)
			logFail(h.log, "updateUser", gin.H{"id": id}, msg)
			c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, msg))
			return
		}
		if err != nil {
			logFail(h.log, "updateUser", gin.H{"id": id}, err.Error())
			c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
			return
		}
		if !check.IsValid {
			msg := "Incorrect password"
			logFail(h.log, "updateUser", gin.H{"id": id}, msg)
			c.JSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, msg))
			return
		}
	}

	u, err := h.svc.UpdateUser(c, id, service.UpdateUserInput{
		Login:    strings.TrimSpace(in.Login),
		Password: in.Password,
		Age:      in.Age,
		Groups:   in.Groups,
	})
	switch {
	case errors.Is(err, domain.ErrNotFound):
		msg := fmt.Sprintf("User with %s has been already removed", id)
		logFail(h.log, "updateUser", gin.H{"id": id}, msg)
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, msg))
	case errors.Is(err, domain.ErrConflict):
		msg := fmt.Sprintf("Login %s already exists", in.Login)
		logFail(h.log, "updateUser", gin.H{"id": id, "login": in.Login}, msg)
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, msg))
	case err != nil:
		logFail(h.log, "updateUser", gin.H{"id": id}, err.Error())
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
	default:
		c.JSON(http.StatusOK, resp.OK(u))
	}
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	_, err := h.svc.SoftDeleteUser(c, id)
	if errors.Is(err, domain.ErrNotFound) {
		msg := fmt.Sprintf("User with {id: %s} doesn't exist or has been already removed", id)
		logFail(h.log, "softDeleteUser", gin.H{"id": id}, msg)
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, msg))
		return
	}
	if err != nil {
		logFail(h.log, "softDeleteUser", gin.H{"id": id}, err.Error())
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"status": true}))
}

// atoiDefault limit 至少是 1，offset 作为页号可以是 0
func atoiDefault(s string, def, min int) int {
	if v, err := strconv.Atoi(s); err == nil && v >= min {
		return v
	}
	return def
}
