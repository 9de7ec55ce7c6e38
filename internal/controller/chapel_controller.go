package controller

import (
	"github.com/gofiber/fiber/v2"

	"oak-village-be/internal/dto"
	"oak-village-be/internal/pkg/serverutils"
	"oak-village-be/internal/service"
)

type IChapelController interface {
	RegisterRoutes(r fiber.Router)
	Confess(ctx *fiber.Ctx) error
}

type chapelController struct {
	service service.IChapelService
}

func NewChapelController(chapelService service.IChapelService) IChapelController {
	return &chapelController{service: chapelService}
}

func (c *chapelController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chapel/v1")
	h.Post("/confess", c.Confess)
}

func (c *chapelController) Confess(ctx *fiber.Ctx) error {
	var req dto.ConfessRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Release(ctx.Context(), req.Confession)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success release confession", res))
}
