package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createSlideViaAPI(t *testing.T, h http.Handler, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	w := doJSON(t, h, http.MethodPost, "/api/v1/hero-slides", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody(t, w)["data"].(map[string]interface{})
}

func TestSlideHandler_CreateAndList(t *testing.T) {
	router, _, _ := setupRouterTest(t, RouterConfig{})

	first := createSlideViaAPI(t, router, map[string]interface{}{
		"title":    "Welcome",
		"subtitle": "To the site",
		"mediaUrl": "https://cdn.example.com/a.jpg",
	})
	assert.Equal(t, float64(1), first["displayOrder"])
	assert.Equal(t, "image", first["mediaType"])
	assert.Equal(t, true, first["isActive"])
	assert.Equal(t, "To the site", first["subtitle"])

	second := createSlideViaAPI(t, router, map[string]interface{}{
		"title":     "Hidden",
		"mediaType": "video",
		"isActive":  false,
	})
	assert.Equal(t, float64(2), second["displayOrder"])

	t.Run("All", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/hero-slides", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(2), body["total"])
		assert.Equal(t, float64(1), body["pages"])
	})

	t.Run("ActiveQuery", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/hero-slides?active=true", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), decodeBody(t, w)["total"])
	})

	t.Run("ActiveEndpoint", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/hero-slides/active", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, float64(1), body["count"])
		assert.NotContains(t, body, "pages")
		data := body["data"].([]interface{})
		assert.Equal(t, "Welcome", data[0].(map[string]interface{})["title"])
	})

	t.Run("BadActiveFlag", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/hero-slides?active=maybe", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSlideHandler_Validation(t *testing.T) {
	router, _, _ := setupRouterTest(t, RouterConfig{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/hero-slides", map[string]interface{}{
		"title":     "",
		"mediaType": "gif",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	details := decodeBody(t, w)["details"].([]interface{})
	require.Len(t, details, 2)
	assert.Equal(t, "mediaType", details[0].(map[string]interface{})["field"])
	assert.Equal(t, "title", details[1].(map[string]interface{})["field"])
}

func TestSlideHandler_ReorderToggleDelete(t *testing.T) {
	router, _, _ := setupRouterTest(t, RouterConfig{})
	slide := createSlideViaAPI(t, router, map[string]interface{}{"title": "Promo"})
	path := "/api/v1/hero-slides/" + slide["id"].(string)

	t.Run("ReorderRequiresDisplayOrder", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPatch, path+"/reorder", map[string]interface{}{})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Display order is required", decodeBody(t, w)["error"])
	})

	t.Run("ReorderRejectsNegative", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPatch, path+"/reorder", map[string]interface{}{"displayOrder": -1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Reorder", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPatch, path+"/reorder", map[string]interface{}{"displayOrder": 7})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(7), decodeBody(t, w)["data"].(map[string]interface{})["displayOrder"])
	})

	t.Run("Toggle", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPatch, path+"/toggle", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decodeBody(t, w)["data"].(map[string]interface{})["isActive"])

		w = doJSON(t, router, http.MethodGet, "/api/v1/hero-slides/active", nil)
		assert.Equal(t, float64(0), decodeBody(t, w)["count"])
	})

	t.Run("Update", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, path, map[string]interface{}{"ctaText": "Buy now"})
		require.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "Buy now", data["ctaText"])
		assert.Equal(t, "Promo", data["title"])
	})

	t.Run("Delete", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Hero slide deleted successfully", decodeBody(t, w)["message"])

		w = doJSON(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Hero slide not found", decodeBody(t, w)["error"])
	})

	t.Run("ToggleMissing", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPatch, "/api/v1/hero-slides/"+uuid.NewString()+"/toggle", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
