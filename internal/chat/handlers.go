package chat

import (
	"strconv"

	"backend-roamio/internal/validation"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/new", func(c *fiber.Ctx) error {
		var req NewChatRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validation.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		created, err := svc.Create(c.Context(), req.UserID, req.Title)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"chat_id": created.ID})
	})

	r.Post("/message", func(c *fiber.Ctx) error {
		var req Message
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validation.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if _, err := svc.SaveMessage(c.Context(), req); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"status": "saved"})
	})

	r.Get("/messages", func(c *fiber.Ctx) error {
		chatID, err := strconv.ParseInt(c.Query("chat_id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "chat_id must be an integer")
		}
		lines, err := svc.Messages(c.Context(), chatID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(lines)
	})

	r.Get("/history", func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if userID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		chats, err := svc.History(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(chats)
	})

	r.Get("/search", func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		if userID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user_id required")
		}
		chats, err := svc.Search(c.Context(), userID, c.Query("query"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(chats)
	})

	r.Post("/ai-reply", func(c *fiber.Ctx) error {
		var req ReplyRequest
		if err := c.BodyParser(&req); err != nil || validation.Struct(req) != nil {
			return fiber.NewError(fiber.StatusBadRequest, "chat_id and message are required")
		}
		return c.JSON(fiber.Map{"chat_id": req.ChatID, "reply": Reply(req.Message)})
	})

	r.Post("/send", func(c *fiber.Ctx) error {
		var req ReplyRequest
		if err := c.BodyParser(&req); err != nil || validation.Struct(req) != nil {
			return fiber.NewError(fiber.StatusBadRequest, "chat_id and message are required")
		}
		reply, err := svc.Send(c.Context(), req.ChatID, req.Message)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"reply": reply})
	})
}
