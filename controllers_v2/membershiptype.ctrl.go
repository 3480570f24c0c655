package v2controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/wazohub/memberpay/lib/service"
)

// MembershipTypeController : Membership type controller struct
type MembershipTypeController struct {
	svc *service.MemberPayService
}

func NewMembershipTypeController(svc *service.MemberPayService) *MembershipTypeController {
	return &MembershipTypeController{svc: svc}
}

type MembershipType struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Duration     int    `json:"duration"`
	DurationUnit string `json:"duration_unit"`
}

type GetMembershipTypesResponseBody struct {
	MembershipTypes []MembershipType `json:"membership_types"`
}

// GetMembershipTypes godoc
// @Summary      Retrieve membership types
// @Description  Returns the membership types a payment can be submitted for
// @Accept       json
// @Produce      json
// @Tags         Membership
// @Success      200  {object}  GetMembershipTypesResponseBody
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/membership-types [get]
// @Security     OAuth2Password
func (controller *MembershipTypeController) GetMembershipTypes(c echo.Context) error {
	membershipTypes, err := controller.svc.FindMembershipTypes(c.Request().Context())
	if err != nil {
		return err
	}

	response := make([]MembershipType, len(membershipTypes))
	for i, membershipType := range membershipTypes {
		response[i] = MembershipType{
			ID:           membershipType.ID,
			Name:         membershipType.Name,
			Amount:       membershipType.Amount,
			Currency:     membershipType.Currency,
			Duration:     membershipType.Duration,
			DurationUnit: membershipType.DurationUnit,
		}
	}
	return c.JSON(http.StatusOK, &GetMembershipTypesResponseBody{MembershipTypes: response})
}
