package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDatasetApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/datasets/upload", NewDatasetHandler().Upload)
	return app
}

func multipartUpload(t *testing.T, filename, content, productID string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	if productID != "" {
		require.NoError(t, writer.WriteField("productId", productID))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/datasets/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadCSV(t *testing.T) {
	app := newDatasetApp()

	csv := "date,sales\n2025-01-01,10\n2025-01-02,12\n"
	resp, err := app.Test(multipartUpload(t, "sales.csv", csv, "42"), 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "sales.csv", body["filename"])
	assert.Equal(t, "42", body["productId"])
	assert.Equal(t, float64(2), body["rowCount"], "header line is not a data row")
	assert.Equal(t, float64(len(csv)), body["size"])
}

func TestUploadWithoutFile(t *testing.T) {
	app := newDatasetApp()

	resp, err := app.Test(multipartUpload(t, "", "", "42"), 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
}

func TestCountRows(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "csv with header", content: "a,b\n1,2\n3,4\n", want: 2},
		{name: "plain lines without commas", content: "one\ntwo\nthree\n", want: 3},
		{name: "blank lines ignored", content: "a,b\n1,2\n\n\n3,4\n", want: 2},
		{name: "empty file", content: "", want: 0},
		{name: "header only", content: "a,b\n", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countRows(tt.content))
		})
	}
}
