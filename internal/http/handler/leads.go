package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"conectaleads/internal/model"
	"conectaleads/internal/repository"
	"conectaleads/internal/service"
)

// leadFilter reads the lead list filters from the query string.
func leadFilter(c *fiber.Ctx) (repository.LeadFilter, *paramError) {
	f := repository.LeadFilter{
		Status:      c.Query("status"),
		City:        c.Query("city"),
		PlanType:    c.Query("plan_type"),
		Temperature: c.Query("temperature"),
		Search:      c.Query("q"),
		SortBy:      c.Query("sort"),
	}
	if c.Query("broker_id") != "" {
		id, err := queryInt(c, "broker_id")
		if err != nil || id <= 0 {
			return f, &paramError{"INVALID_BROKER_ID", "invalid broker_id"}
		}
		f.BrokerID = int64(id)
	}
	switch strings.ToLower(c.Query("order")) {
	case "", "desc":
	case "asc":
		f.Ascending = true
	default:
		return f, &paramError{"INVALID_ORDER", "order must be asc or desc"}
	}
	return f, nil
}

// ListLeads returns a filtered page of leads.
//
// @Summary List leads
// @Tags    leads
// @Param   status      query string false "pipeline status"
// @Param   city        query string false "city, case-insensitive"
// @Param   plan_type   query string false "plan type"
// @Param   temperature query string false "frio, morno or quente"
// @Param   broker_id   query int    false "assigned broker"
// @Param   q           query string false "search name, email or phone"
// @Param   sort        query string false "created_at, name, city, temperature or status"
// @Param   order       query string false "asc or desc"
// @Param   limit       query int    false "page size (default 10)"
// @Param   offset      query int    false "offset"
// @Success 200 {object} service.LeadListResult
// @Failure 400 {object} errorPayload
// @Router  /leads [get]
func ListLeads(svc service.LeadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, perr := leadFilter(c)
		if perr != nil {
			return perr.write(c)
		}
		limit, offset, perr := pagination(c)
		if perr != nil {
			return perr.write(c)
		}

		res, err := svc.List(c.UserContext(), f, limit, offset)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateLead registers a lead from the JSON body.
//
// @Summary Create lead
// @Tags    leads
// @Accept  json
// @Param   lead body model.LeadInput true "lead"
// @Success 201 {object} model.Lead
// @Failure 400 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router  /leads [post]
func CreateLead(svc service.LeadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.LeadInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		l, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(l)
	}
}

// GetLead returns one lead with its broker name.
//
// @Summary Get lead
// @Tags    leads
// @Param   id path int true "lead id"
// @Success 200 {object} model.Lead
// @Failure 404 {object} errorPayload
// @Router  /leads/{id} [get]
func GetLead(svc service.LeadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return invalidID(c)
		}
		l, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(l)
	}
}

// UpdateLead replaces a lead's writable fields.
//
// @Summary Update lead
// @Tags    leads
// @Accept  json
// @Param   id   path int             true "lead id"
// @Param   lead body model.LeadInput true "lead"
// @Success 200 {object} model.Lead
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router  /leads/{id} [put]
func UpdateLead(svc service.LeadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return invalidID(c)
		}
		var in model.LeadInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		l, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(l)
	}
}

// DeleteLead removes a lead.
//
// @Summary Delete lead
// @Tags    leads
// @Param   id path int true "lead id"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router  /leads/{id} [delete]
func DeleteLead(svc service.LeadService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := idParam(c)
		if !ok {
			return invalidID(c)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return serviceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
