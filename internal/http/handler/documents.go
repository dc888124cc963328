package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pollbuilder/internal/model"
	"pollbuilder/internal/service"
)

type documentsResponse struct {
	Documents []model.DocumentMetadata `json:"documents"`
}

type uploadResponse struct {
	Success  bool                    `json:"success"`
	Document *model.DocumentMetadata `json:"document"`
}

type processResponse struct {
	Success bool `json:"success"`
	service.ProcessResult
}

type processRequest struct {
	DocumentID string `json:"documentId"`
}

// ListDocuments returns every uploaded document.
//
//	@Summary	List documents
//	@Tags		documents
//	@Success	200	{object}	documentsResponse
//	@Router		/documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.List(c.UserContext())
		if err != nil {
			return documentError(c, err)
		}
		return c.JSON(documentsResponse{Documents: docs})
	}
}

// GetDocument returns one document.
//
//	@Summary	Get document
//	@Tags		documents
//	@Param		id	path		string	true	"document id"
//	@Success	200	{object}	model.DocumentMetadata
//	@Failure	400	{object}	errorPayload
//	@Failure	404	{object}	errorPayload
//	@Router		/documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return documentError(c, err)
		}
		return c.JSON(doc)
	}
}

// UploadDocument stores a PDF or DOCX sent as multipart field "file".
//
//	@Summary	Upload document
//	@Tags		documents
//	@Security	AdminToken
//	@Accept		multipart/form-data
//	@Param		file	formData	file	true	"PDF or DOCX"
//	@Success	201		{object}	uploadResponse
//	@Failure	400		{object}	errorPayload
//	@Failure	401		{object}	errorPayload
//	@Router		/documents [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "No file provided")
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

		doc, err := svc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size)
		if err != nil {
			return documentError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(uploadResponse{Success: true, Document: doc})
	}
}

// DeleteDocument removes a document. Its questions stay in the library.
//
//	@Summary	Delete document
//	@Tags		documents
//	@Security	AdminToken
//	@Param		id	path	string	true	"document id"
//	@Success	204
//	@Failure	404	{object}	errorPayload
//	@Router		/documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return documentError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ProcessDocument runs extraction for the document in the path.
//
//	@Summary	Process document
//	@Tags		documents
//	@Security	AdminToken
//	@Param		id	path		string	true	"document id"
//	@Success	200	{object}	processResponse
//	@Failure	422	{object}	errorPayload
//	@Failure	502	{object}	errorPayload
//	@Router		/documents/{id}/process [post]
func ProcessDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		return process(c, svc, id)
	}
}

// ProcessLegacy is ProcessDocument with the id in a JSON body {"documentId": "..."}.
//
//	@Summary	Process document by body id
//	@Tags		documents
//	@Security	AdminToken
//	@Accept		json
//	@Param		body	body		processRequest	true	"document to process"
//	@Success	200		{object}	processResponse
//	@Router		/process [post]
func ProcessLegacy(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req processRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		if req.DocumentID == "" {
			return writeError(c, fiber.StatusBadRequest, "ID_REQUIRED", "documentId is required")
		}
		return process(c, svc, req.DocumentID)
	}
}

func process(c *fiber.Ctx, svc service.DocumentService, id string) error {
	res, err := svc.Process(c.UserContext(), id)
	if err != nil {
		return processError(c, err)
	}
	return c.JSON(processResponse{Success: true, ProcessResult: *res})
}
