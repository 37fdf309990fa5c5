package api

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/herflow/internal/services"
)

const maxRestoreUploadBytes = 8 << 20

func (handler *Handler) ExportBackup(c *fiber.Ctx) error {
	payload, filename, err := handler.backupService.Export()
	handler.recordBackup("export", err == nil)
	if err != nil {
		return handler.serviceError(c, err, "failed to build backup")
	}
	setAttachmentHeaders(c, fiber.MIMEApplicationJSONCharsetUTF8, filename)
	return c.Send(payload)
}

// RestoreBackup accepts the document as the raw body or as a multipart
// "file" upload.
func (handler *Handler) RestoreBackup(c *fiber.Ctx) error {
	raw, err := restorePayload(c)
	if err != nil {
		handler.recordBackup("restore", false)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid upload"})
	}

	err = handler.backupService.Restore(raw)
	handler.recordBackup("restore", err == nil)
	if err != nil {
		status := fiber.StatusInternalServerError
		message := "failed to restore backup"
		if errors.Is(err, services.ErrMalformedBackup) {
			status = fiber.StatusBadRequest
			message = err.Error()
		}
		return c.Status(status).JSON(fiber.Map{"success": false, "error": message})
	}
	return c.JSON(fiber.Map{"success": true})
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	snapshot := handler.store.Snapshot()
	rows := services.BuildCSVRows(snapshot.Periods, snapshot.DailyLogs)

	var output bytes.Buffer
	if err := services.WriteCSV(&output, rows); err != nil {
		return handler.serviceError(c, err, "failed to build export")
	}

	setAttachmentHeaders(c, "text/csv", buildExportFilename(handler.today(), "csv"))
	return c.Send(output.Bytes())
}

func restorePayload(c *fiber.Ctx) ([]byte, error) {
	if !strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		return c.Body(), nil
	}

	header, err := c.FormFile("file")
	if err != nil {
		return nil, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, maxRestoreUploadBytes))
}
