package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"oak-village-be/internal/dto"
	"oak-village-be/internal/pkg/serverutils"
	"oak-village-be/internal/service"
)

type IGuestbookController interface {
	RegisterRoutes(r fiber.Router)
	Sign(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type guestbookController struct {
	service service.IGuestbookService
}

func NewGuestbookController(guestbookService service.IGuestbookService) IGuestbookController {
	return &guestbookController{service: guestbookService}
}

func (c *guestbookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/guestbook/v1")
	h.Get("", c.List)
	h.Post("", c.Sign)
}

func (c *guestbookController) Sign(ctx *fiber.Ctx) error {
	var req dto.SignGuestbookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Sign(ctx.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmptySignature) {
			return serverutils.NewAppError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success sign guestbook", res))
}

func (c *guestbookController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get guestbook", res))
}
