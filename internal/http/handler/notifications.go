package handler

import (
	"github.com/gofiber/fiber/v2"

	"conectaleads/internal/service"
)

// ListNotifications lists notifications, newest first; unread=true keeps
// only unread ones.
func ListNotifications(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		unread, err := queryBool(c, "unread")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_UNREAD", "unread must be true or false")
		}
		limit, offset, perr := pagination(c)
		if perr != nil {
			return perr.write(c)
		}
		res, err := svc.List(c.UserContext(), unread != nil && *unread, limit, offset)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

func MarkNotificationRead(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.MarkRead(c.UserContext(), c.Params("id")); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func MarkAllNotificationsRead(svc service.NotificationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := svc.MarkAllRead(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"updated": n})
	}
}
