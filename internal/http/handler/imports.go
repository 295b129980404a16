package handler

import (
	"github.com/gofiber/fiber/v2"

	"conectaleads/internal/csvimport"
	"conectaleads/internal/service"
)

// ImportLeads imports a CSV upload (multipart field "file").
//
// @Summary Import leads from CSV
// @Tags    imports
// @Accept  multipart/form-data
// @Param   file formData file true "CSV file"
// @Success 201 {object} service.ImportResult
// @Failure 400 {object} errorPayload
// @Failure 413 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router  /leads/import [post]
func ImportLeads(svc service.ImportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		res, err := svc.Import(c.UserContext(), f, fh.Filename, fh.Size)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// ImportTemplate downloads the sample CSV.
//
// @Summary Download the import template
// @Tags    imports
// @Produce text/csv
// @Success 200 {string} string
// @Router  /leads/import/template [get]
func ImportTemplate(svc service.ImportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Attachment(csvimport.TemplateFilename)
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		if err := svc.Template(c.Response().BodyWriter()); err != nil {
			return serviceError(c, err)
		}
		return nil
	}
}

// ListImports returns import batches, newest first.
//
// @Summary List import batches
// @Tags    imports
// @Success 200 {object} service.ImportListResult
// @Router  /imports [get]
func ListImports(svc service.ImportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, perr := pagination(c)
		if perr != nil {
			return perr.write(c)
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetImport returns one import batch.
func GetImport(svc service.ImportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		b, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(b)
	}
}

// DownloadImport redirects to a presigned link for the archived file.
func DownloadImport(svc service.ImportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.DownloadURL(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.Redirect(u, fiber.StatusFound)
	}
}

// PreviewImport re-parses the archived file of a batch and returns the leads
// it yields today.
//
// @Summary Preview the leads of an archived import
// @Tags    imports
// @Param   id path string true "Import batch id"
// @Success 200 {array} model.ImportedLead
// @Failure 404 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Router  /imports/{id}/leads [get]
func PreviewImport(svc service.ImportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		leads, err := svc.Preview(c.UserContext(), c.Params("id"))
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"data": leads, "total": len(leads)})
	}
}
