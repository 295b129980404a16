package handler

import (
	"github.com/gofiber/fiber/v2"

	"conectaleads/internal/model"
	"conectaleads/internal/repository"
	"conectaleads/internal/service"
)

// ListBrokers lists brokers, optionally searched by name/email (q) and
// filtered by the active flag.
//
// @Summary List brokers
// @Tags    brokers
// @Param   q      query string false "search name or email"
// @Param   active query bool   false "active flag"
// @Success 200 {array} model.Broker
// @Router  /brokers [get]
func ListBrokers(svc service.BrokerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		active, err := queryBool(c, "active")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ACTIVE", "active must be true or false")
		}
		items, err := svc.List(c.UserContext(), repository.BrokerFilter{Search: c.Query("q"), Active: active})
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"data": items})
	}
}

// CreateBroker registers a broker.
//
// @Summary Create broker
// @Tags    brokers
// @Accept  json
// @Param   broker body model.BrokerInput true "broker"
// @Success 201 {object} model.Broker
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router  /brokers [post]
func CreateBroker(svc service.BrokerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.BrokerInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		b, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(b)
	}
}

func GetBroker(svc service.BrokerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return invalidID(c)
		}
		b, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(b)
	}
}

func UpdateBroker(svc service.BrokerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return invalidID(c)
		}
		var in model.BrokerInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		b, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(b)
	}
}

// ToggleBrokerActive flips a broker between active and inactive.
func ToggleBrokerActive(svc service.BrokerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return invalidID(c)
		}
		b, err := svc.ToggleActive(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(b)
	}
}

// UploadBrokerAvatar replaces the avatar (multipart field "file").
//
// @Summary Upload broker avatar
// @Tags    brokers
// @Accept  multipart/form-data
// @Param   id   path     int  true "broker id"
// @Param   file formData file true "image"
// @Success 200 {object} model.Broker
// @Failure 400 {object} errorPayload
// @Router  /brokers/{id}/avatar [put]
func UploadBrokerAvatar(svc service.BrokerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return invalidID(c)
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		b, err := svc.UploadAvatar(c.UserContext(), id, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(b)
	}
}

// BrokerAvatar redirects to a presigned avatar link.
func BrokerAvatar(svc service.BrokerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return invalidID(c)
		}
		u, err := svc.AvatarURL(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Redirect(u, fiber.StatusFound)
	}
}
