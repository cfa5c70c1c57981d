package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-user-group-api/internal/core/auth"
	"go-user-group-api/internal/domain"
	"go-user-group-api/internal/service"
	resp "go-user-group-api/internal/transport/http/response"
)

type LoginHandler struct {
	svc   *service.UserService
	jwter *auth.JWTer
	log   *zap.Logger
}

func NewLoginHandler(svc *service.UserService, jwter *auth.JWTer, log *zap.Logger) *LoginHandler {
	return &LoginHandler{svc: svc, jwter: jwter, log: log}
}

type loginReq struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CheckLogin 口令对了发 token，claims 带 {login, age}
func (h *LoginHandler) CheckLogin(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}

	check, err := h.svc.CheckLogin(c, domain.Credentials{Login: in.Login, Password: in.Password})
	if errors.Is(err, domain.ErrNotFound) {
		msg := fmt.Sprintf("User with %s doesn't exist", in.Login)
		logFail(h.log, "checkLogin", gin.H{"login": in.Login}, msg)
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, msg))
		return
	}
	if err != nil {
		logFail(h.log, "checkLogin", gin.H{"login": in.Login}, err.Error())
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
		return
	}
	if !check.IsValid {
		msg := "Incorrect login or password"
		logFail(h.log, "checkLogin", gin.H{"login": in.Login}, msg)
		c.JSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, msg))
		return
	}

	token, err := h.jwter.Issue(check.User.Login, check.User.Age)
	if err != nil || token == "" {
		logFail(h.log, "checkLogin", gin.H{"login": in.Login}, "issue token failed")
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "issue token failed"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"token": token}))
}
