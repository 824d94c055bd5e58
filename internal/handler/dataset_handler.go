package handler

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const maxUploadBytes = 10 * 1024 * 1024 // 10MB

type DatasetHandler struct{}

func NewDatasetHandler() *DatasetHandler {
	return &DatasetHandler{}
}

// Upload accepts one dataset file (≤10MB) plus an optional productId and
// reports basic shape info. The file is inspected, not stored: training
// happens in the external ML service.
// POST /api/datasets/upload
func (h *DatasetHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "No file uploaded"})
	}

	if fileHeader.Size > maxUploadBytes {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "File exceeds the 10MB limit"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to read uploaded file"})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to read uploaded file"})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"filename":  fileHeader.Filename,
		"productId": c.FormValue("productId"),
		"rowCount":  countRows(string(content)),
		"size":      fileHeader.Size,
	})
}

// countRows estimates data rows: non-empty lines, minus a header line when
// the content looks like CSV. A rough heuristic, quoted newlines inside
// fields are not handled.
func countRows(content string) int {
	rows := 0
	firstLine := ""
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if rows == 0 {
			firstLine = line
		}
		rows++
	}
	if rows > 0 && strings.Contains(firstLine, ",") {
		rows--
	}
	return rows
}
