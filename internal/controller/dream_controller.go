package controller

import (
	"encoding/base64"
	"errors"

	"github.com/gofiber/fiber/v2"

	"oak-village-be/internal/dto"
	"oak-village-be/internal/entity"
	"oak-village-be/internal/pkg/serverutils"
	"oak-village-be/internal/service"
)

type IDreamController interface {
	RegisterRoutes(r fiber.Router)
	Interpret(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	SetImageSize(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	ChatHistory(ctx *fiber.Ctx) error
}

type dreamController struct {
	service service.IDreamService
	relay   service.IRelayService
}

func NewDreamController(dreamService service.IDreamService, relay service.IRelayService) IDreamController {
	return &dreamController{service: dreamService, relay: relay}
}

func (c *dreamController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dream/v1")
	h.Get("/session", c.Show)
	h.Post("/interpret", c.Interpret)
	h.Post("/reset", c.Reset)
	h.Put("/image-size", c.SetImageSize)
	h.Post("/chat", c.SendChat)
	h.Get("/chat", c.ChatHistory)
}

func (c *dreamController) Interpret(ctx *fiber.Ctx) error {
	var req dto.InterpretDreamRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	audio, err := base64.StdEncoding.DecodeString(req.Audio)
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "audio must be base64 encoded")
	}
	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = "audio/webm"
	}

	res, err := c.service.Interpret(ctx.Context(), audio, mimeType)
	if err != nil {
		if errors.Is(err, service.ErrInterpretationInFlight) {
			return serverutils.NewAppError(fiber.StatusConflict, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success interpret dream", res))
}

func (c *dreamController) Show(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get dream session", c.service.Session()))
}

func (c *dreamController) Reset(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success reset dream session", c.service.Reset()))
}

func (c *dreamController) SetImageSize(ctx *fiber.Ctx) error {
	var req dto.SetImageSizeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.service.SetImageSize(entity.ImageSize(req.Size))
	return ctx.JSON(serverutils.SuccessResponse("Success set image size", res))
}

func (c *dreamController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.relay.Send(ctx.Context(), req.Chat)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			return serverutils.NewAppError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNoConversation):
			return serverutils.NewAppError(fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrExchangeInFlight):
			return serverutils.NewAppError(fiber.StatusConflict, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *dreamController) ChatHistory(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", c.relay.History()))
}
