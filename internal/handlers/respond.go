package handlers

import (
	"net/http"

	"trading-admin-service/pkg/common"

	"github.com/gin-gonic/gin"
)

// respond writes a service result using the status carried in the envelope.
func respond(c *gin.Context, result interface{}, err error) {
	if err != nil {
		c.JSON(http.StatusInternalServerError,
			common.NewErrorResponse("Internal server error", nil, http.StatusInternalServerError))
		return
	}

	switch r := result.(type) {
	case common.SuccessResponse:
		c.JSON(r.Status, r)
	case common.ErrorResponse:
		c.JSON(r.Status, r)
	default:
		c.JSON(http.StatusOK, result)
	}
}
