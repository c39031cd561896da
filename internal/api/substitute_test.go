package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstituteEndpoints(t *testing.T) {
	router, _ := setupTestRouter(t)
	_, token := newAuthToken(t)

	w := doRequest(t, router, "POST", "/api/v1/substitutes", token, map[string]interface{}{
		"ingredient":  "Butter",
		"substitutes": []string{"margarine", "coconut oil"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "butter", decodeBody(t, w)["ingredient"])

	w = doRequest(t, router, "POST", "/api/v1/substitutes", token, map[string]interface{}{
		"ingredient":  "butter",
		"substitutes": []string{"ghee"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, "GET", "/api/v1/substitutes/BUTTER", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "butter", body["ingredient"])
	assert.Equal(t, []interface{}{"margarine", "coconut oil"}, body["substitutes"])

	// Unknown ingredients answer with a placeholder list, not an error body.
	w = doRequest(t, router, "GET", "/api/v1/substitutes/saffron", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, []interface{}{"No substitutes found."}, body["substitutes"])

	w = doRequest(t, router, "GET", "/api/v1/substitutes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["substitutes"], 1)
}
