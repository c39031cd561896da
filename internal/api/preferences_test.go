package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)
	_, token := newAuthToken(t)

	// Fresh users see an empty mapping.
	w := doRequest(t, router, "GET", "/api/v1/preferences", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Empty(t, body["dietary_preferences"])

	w = doRequest(t, router, "PUT", "/api/v1/preferences", token, map[string]interface{}{
		"dietary_preferences": map[string]interface{}{
			"tags": []string{"vegetarian"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "GET", "/api/v1/preferences", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	prefs, ok := body["dietary_preferences"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"vegetarian"}, prefs["tags"])

	// Omitting the mapping clears the stored preferences.
	w = doRequest(t, router, "PUT", "/api/v1/preferences", token, map[string]interface{}{})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "GET", "/api/v1/preferences", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["dietary_preferences"])
}

func TestDietaryFilterEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)
	_, token := newAuthToken(t)

	w := doRequest(t, router, "POST", "/api/v1/dietary-filters", token, map[string]interface{}{
		"name": "Vegetarian",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "vegetarian", decodeBody(t, w)["name"])

	w = doRequest(t, router, "POST", "/api/v1/dietary-filters", token, map[string]interface{}{
		"name": "vegetarian",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, "POST", "/api/v1/dietary-filters", token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, "GET", "/api/v1/dietary-filters", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["filters"], 1)
}
