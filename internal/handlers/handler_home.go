package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// healthResponse reports liveness and which store backs the API.
type healthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

// getHealth godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Produce json
// @Success 200 {object} healthResponse
// @Router /health [get]
func getHealth(store string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, healthResponse{Status: "OK", Store: store})
	}
}
