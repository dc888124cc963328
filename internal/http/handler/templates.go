package handler

import (
	"mime"

	"github.com/gofiber/fiber/v2"

	"pollbuilder/internal/service"
)

// ExportTemplate renders the requested questions as a downloadable instrument.
//
//	@Summary	Export poll instrument
//	@Tags		templates
//	@Accept		json
//	@Produce	text/markdown
//	@Produce	text/html
//	@Param		body	body	service.TemplateRequest	true	"template"
//	@Success	200
//	@Failure	400	{object}	errorPayload
//	@Router		/templates/export [post]
func ExportTemplate(svc service.TemplateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.TemplateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		res, err := svc.Export(c.UserContext(), req)
		if err != nil {
			return templateError(c, err)
		}
		c.Set(fiber.HeaderContentType, res.ContentType)
		c.Set(fiber.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": res.Filename}))
		return c.Send(res.Body)
	}
}
