package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-user-group-api/internal/domain"
	"go-user-group-api/internal/service"
	resp "go-user-group-api/internal/transport/http/response"
)

type GroupHandler struct {
	svc *service.GroupService
	log *zap.Logger
}

func NewGroupHandler(svc *service.GroupService, log *zap.Logger) *GroupHandler {
	return &GroupHandler{svc: svc, log: log}
}

type createGroupReq struct {
	Name        string   `json:"name" binding:"required"`
	Permissions []string `json:"permissions"`
	Users       []string `json:"users"`
}

type updateGroupReq struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
	Users       []string `json:"users"`
}

type addUsersReq struct {
	UserIDs []string `json:"userIds" binding:"required"`
}

func (h *GroupHandler) Create(c *gin.Context) {
	var in createGroupReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}

	g, err := h.svc.CreateGroup(c, service.CreateGroupInput{
		Name:        strings.TrimSpace(in.Name),
		Permissions: in.Permissions,
		Users:       in.Users,
	})
	if err != nil {
		logFail(h.log, "createGroup", gin.H{"name": in.Name}, err.Error())
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(g))
}

func (h *GroupHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	g, err := h.svc.GetGroupByID(c, id)
	if errors.Is(err, domain.ErrNotFound) {
		msg := fmt.Sprintf("Group with %s doesn't exist", id)
		logFail(h.log, "getGroupByID", gin.H{"id": id}, msg)
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, msg))
		return
	}
	if err != nil {
		logFail(h.log, "getGroupByID", gin.H{"id": id}, err.Error())
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(g))
}

func (h *GroupHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var in updateGroupReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}

	g, err := h.svc.UpdateGroup(c, id, service.UpdateGroupInput{
		Name:        strings.TrimSpace(in.Name),
		Permissions: in.Permissions,
		Users:       in.Users,
	})
	if errors.Is(err, domain.ErrNotFound) {
		msg := fmt.Sprintf("Group with %s has been already removed", id)
		logFail(h.log, "updateGroup", gin.H{"id": id}, msg)
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, msg))
		return
	}
	if err != nil {
		logFail(h.log, "updateGroup", gin.H{"id": id}, err.Error())
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(g))
}

func (h *GroupHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	_, err := h.svc.DeleteGroup(c, id)
	if errors.Is(err, domain.ErrNotFound) {
		msg := fmt.Sprintf("Group with {id: %s} doesn't exist or has been already removed", id)
		logFail(h.log, "deleteGroup", gin.H{"id": id}, msg)
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, msg))
		return
	}
	if err != nil {
		logFail(h.log, "deleteGroup", gin.H{"id": id}, err.Error())
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"status": true}))
}

// AddUsers PATCH /groups/:id 把一批用户并进成员集
func (h *GroupHandler) AddUsers(c *gin.Context) {
	id := c.Param("id")

	var in addUsersReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}

	g, err := h.svc.AddUsersToGroup(c, id, in.UserIDs)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		msg := fmt.Sprintf("Group with {id: %s} or userIds %v don't exist or has been already removed", id, in.UserIDs)
		logFail(h.log, "addUsersToGroup", gin.H{"id": id, "userIds": in.UserIDs}, msg)
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, msg))
	case errors.Is(err, domain.ErrTxFailed):
		msg := "Something went wrong during adding users into group"
		logFail(h.log, "addUsersToGroup", gin.H{"id": id, "userIds": in.UserIDs}, msg)
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, msg))
	case err != nil:
		logFail(h.log, "addUsersToGroup", gin.H{"id": id, "userIds": in.UserIDs}, err.Error())
		c.JSON(http.StatusInternalServerError, resp.Error(resp.CodeServerError, "internal error"))
	default:
		c.JSON(http.StatusOK, resp.OK(g))
	}
}
