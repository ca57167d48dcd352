package api

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/hashmessi/custom-Content-Management-System-CMS/pkg/cms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func uploadRequest(t *testing.T, fileName, mimeType string, data []byte, alt string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if fileName != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		header.Set("Content-Type", mimeType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	if alt != "" {
		require.NoError(t, mw.WriteField("alt", alt))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/media/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestMediaHandler_Upload(t *testing.T) {
	router, _, host := setupRouterTest(t, RouterConfig{})

	req := uploadRequest(t, "Team Photo.jpeg", "image/jpeg", testJPEG(t, 2400, 1200), "Our team")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Team Photo.jpeg", data["fileName"])
	assert.Equal(t, "image", data["fileType"])
	assert.Equal(t, float64(1920), data["width"])
	assert.Equal(t, float64(960), data["height"])
	assert.True(t, strings.HasSuffix(data["publicId"].(string), "_team-photo.jpg"))
	assert.Equal(t, 1, host.Len())

	w = doJSON(t, router, http.MethodGet, "/api/v1/media/"+data["id"].(string), nil)
	require.Equal(t, http.StatusOK, w.Code)
	asset := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Our team", asset["alt"])
	assert.Equal(t, "image/jpeg", asset["mimeType"])
}

func TestMediaHandler_UploadErrors(t *testing.T) {
	router, _, host := setupRouterTest(t, RouterConfig{MaxUploadBytes: 64}, cms.WithMaxUploadBytes(64))

	tests := []struct {
		name     string
		fileName string
		mimeType string
		data     []byte
		status   int
	}{
		{"NoFile", "", "", nil, http.StatusBadRequest},
		{"UnsupportedType", "doc.pdf", "application/pdf", []byte("%PDF"), http.StatusBadRequest},
		{"MismatchedExtension", "clip.png", "video/mp4", []byte("data"), http.StatusBadRequest},
		{"CorruptImage", "broken.png", "image/png", []byte("not an image"), http.StatusBadRequest},
		{"TooLarge", "big.mp4", "video/mp4", bytes.Repeat([]byte("x"), 65), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, uploadRequest(t, tt.fileName, tt.mimeType, tt.data, ""))
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, false, decodeBody(t, w)["success"])
		})
	}

	assert.Equal(t, 0, host.Len())
}

func TestMediaHandler_ListUpdateDelete(t *testing.T) {
	router, _, host := setupRouterTest(t, RouterConfig{})

	for name, mimeType := range map[string]string{"a.mp4": "video/mp4", "b.webm": "video/webm"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, uploadRequest(t, name, mimeType, []byte("video"), ""))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "c.jpg", "image/jpeg", testJPEG(t, 40, 30), ""))
	require.Equal(t, http.StatusCreated, w.Code)
	imageID := decodeBody(t, w)["data"].(map[string]interface{})["id"].(string)

	w = doJSON(t, router, http.MethodGet, "/api/v1/media?type=video", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["total"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/media?type=audio", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/v1/media/"+imageID, map[string]interface{}{"alt": "  A cat  "})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "A cat", decodeBody(t, w)["data"].(map[string]interface{})["alt"])

	w = doJSON(t, router, http.MethodDelete, "/api/v1/media/"+imageID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Media asset deleted successfully", decodeBody(t, w)["message"])
	assert.Equal(t, 2, host.Len())

	w = doJSON(t, router, http.MethodDelete, "/api/v1/media/"+imageID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Media asset not found", decodeBody(t, w)["error"])
}
