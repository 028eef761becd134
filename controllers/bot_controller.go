package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"cafebot/pkg/resp"
	"cafebot/repository"
	"cafebot/services"
	"cafebot/utils"
)

// BotController is the gateway-facing surface: it resolves the acting user
// and hands tokens and messages to the dispatcher. All control flow lives in
// the services; views come back as JSON.
type BotController struct {
	Dispatcher *services.Dispatcher
	Users      *repository.UserRepository
}

func NewBotController(d *services.Dispatcher, users *repository.UserRepository) *BotController {
	return &BotController{Dispatcher: d, Users: users}
}

type actionReq struct {
	Token string `json:"token" binding:"required"`
}

// POST /bot/action
func (h *BotController) Action(c *gin.Context) {
	var req actionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := h.Users.FindByID(utils.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			resp.Unauthorized(c, "unknown user")
			return
		}
		resp.ServerError(c, err)
		return
	}

	v := h.Dispatcher.HandleAction(user, utils.IsStaff(c), req.Token)
	resp.OK(c, v)
}

type messageReq struct {
	Text string `json:"text" binding:"required"`
}

// POST /bot/message
func (h *BotController) Message(c *gin.Context) {
	var req messageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := h.Users.FindByID(utils.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			resp.Unauthorized(c, "unknown user")
			return
		}
		resp.ServerError(c, err)
		return
	}

	v := h.Dispatcher.HandleMessage(user, utils.IsStaff(c), req.Text)
	resp.OK(c, v)
}
