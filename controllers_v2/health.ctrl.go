package v2controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wazohub/memberpay/lib/service"
)

type HealthController struct {
	svc *service.MemberPayService
}

func NewHealthController(svc *service.MemberPayService) *HealthController {
	return &HealthController{svc: svc}
}

type HealthResponse struct {
	Result string `json:"result"`
}

// Health godoc
// @Summary      Check system health
// @Description  Check system health
// @Accept       json
// @Produce      json
// @Tags         System
// @Success      200  {object}  HealthResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /health [get]
func (controller *HealthController) Health(c echo.Context) error {
	if err := controller.svc.DB.PingContext(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &HealthResponse{
		Result: "OK",
	})
}
