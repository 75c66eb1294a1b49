package handlers

import (
	"errors"
	"io"

	"github.com/Sevrus/billed/internal/dto"
	"github.com/Sevrus/billed/internal/routes"
	"github.com/Sevrus/billed/internal/service"
	"github.com/Sevrus/billed/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BillHandler struct {
	billsService   *service.BillsService
	newBillService *service.NewBillService
	logger         *zap.Logger
}

func NewBillHandler(billsService *service.BillsService, newBillService *service.NewBillService, logger *zap.Logger) *BillHandler {
	return &BillHandler{
		billsService:   billsService,
		newBillService: newBillService,
		logger:         logger,
	}
}

// ListBills godoc
// @Summary List bills
// @Description Bill list for the signed-in employee, most recent first
// @Tags bills
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.DisplayBill
// @Router /api/v1/bills [get]
func (h *BillHandler) ListBills(c *fiber.Ctx) error {
	if _, err := currentSession(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	bills, err := h.billsService.ListBills(c.Context())
	if err != nil {
		h.logger.Error("Failed to list bills", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list bills",
		})
	}

	return c.JSON(bills)
}

// UploadFile godoc
// @Summary Attach a receipt to a new bill
// @Description Upload the bill attachment; only jpg, jpeg and png are accepted
// @Tags bills
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Receipt image"
// @Security Bearer
// @Success 201 {object} dto.UploadFileResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/bills/upload [post]
func (h *BillHandler) UploadFile(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read file",
		})
	}

	draft, err := h.newBillService.SelectFile(c.Context(), sess, file.Filename, content)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFileType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Failed to upload file", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload file",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UploadFileResponse{
		BillID:   draft.BillID,
		FileURL:  draft.FileURL,
		FileName: draft.FileName,
	})
}

// SubmitBill godoc
// @Summary Submit a new bill
// @Description Finalize the draft with the form values; status starts as pending
// @Tags bills
// @Accept json
// @Produce json
// @Param request body dto.BillForm true "Bill form"
// @Security Bearer
// @Success 200 {object} dto.SubmitBillResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/bills [post]
func (h *BillHandler) SubmitBill(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var form dto.BillForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	bill, err := h.newBillService.Submit(c.Context(), sess, form)
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to submit bill",
		})
	}

	return c.JSON(dto.SubmitBillResponse{
		ID:       bill.ID,
		Status:   string(bill.Status),
		Redirect: routes.Bills,
	})
}

// Preview godoc
// @Summary Attachment preview markup
// @Description Markup the client injects into its preview modal for a bill attachment
// @Tags bills
// @Produce html
// @Param url query string true "Attachment URL"
// @Param width query int false "Image width" default(480)
// @Security Bearer
// @Success 200 {string} string
// @Router /api/v1/bills/preview [get]
func (h *BillHandler) Preview(c *fiber.Ctx) error {
	if _, err := currentSession(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	billURL := c.Query("url")
	if billURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "url is required",
		})
	}
	width := c.QueryInt("width", 480)

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(service.PreviewHTML(billURL, width))
}

func currentSession(c *fiber.Ctx) (session.Session, error) {
	email, ok := c.Locals("email").(string)
	if !ok || email == "" {
		return session.Session{}, fiber.ErrUnauthorized
	}
	return session.Session{Email: email}, nil
}
