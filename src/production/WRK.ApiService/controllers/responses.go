package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	api_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/api"
)

const (
	MsgServerError        = "Server Error"
	MsgInvalidRequestBody = "Invalid request body"
)

func respondMsg(c *gin.Context, status int, msg string) {
	c.JSON(status, api_models.MessageResponse{Msg: msg})
}

// bindJSON decodes the body into obj. An empty body leaves obj zeroed.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		respondMsg(c, http.StatusBadRequest, MsgInvalidRequestBody)
		return false
	}
	return true
}
