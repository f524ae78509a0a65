package handlers

import (
	"strconv"

	"forum-api/helper"
	"forum-api/models"

	"github.com/gin-gonic/gin"
)

// paramID parses a numeric path parameter. On failure it writes the 400
// response itself and the caller just returns.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		helper.SendBadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func bindListParams(c *gin.Context) models.ListParams {
	var params models.ListParams
	if err := c.ShouldBindQuery(&params); err != nil || params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 20
	}
	return params
}
