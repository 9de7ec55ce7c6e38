package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"oak-village-be/internal/dto"
	"oak-village-be/internal/pkg/serverutils"
	"oak-village-be/internal/service"
)

type IStoryController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Speak(ctx *fiber.Ctx) error
	Save(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type storyController struct {
	service service.IStoryService
}

func NewStoryController(storyService service.IStoryService) IStoryController {
	return &storyController{service: storyService}
}

func (c *storyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/story/v1")
	h.Get("", c.List)
	h.Post("/generate", c.Generate)
	h.Post(":id/speak", c.Speak)
	h.Post(":id/save", c.Save)
}

func (c *storyController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateStoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Generate(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrStoryGeneration) {
			return serverutils.NewAppError(fiber.StatusBadGateway, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate story", res))
}

func (c *storyController) Speak(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "invalid story id")
	}

	res, err := c.service.Speak(ctx.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoryNotFound):
			return serverutils.NewAppError(fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSpeechSynthesis):
			return serverutils.NewAppError(fiber.StatusBadGateway, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success speak story", res))
}

func (c *storyController) Save(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "invalid story id")
	}

	res, err := c.service.Save(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStoryNotFound) {
			return serverutils.NewAppError(fiber.StatusNotFound, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save story", res))
}

func (c *storyController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get saved stories", res))
}
