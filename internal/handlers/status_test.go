package handlers

import (
	"net/http"
	"testing"
)

func TestStatusEndpoints(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("health", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/health", nil, nil)
		assertStatus(t, resp, http.StatusOK)
		body := decodeJSONMap(t, resp)
		if body["status"] != "ok" {
			t.Errorf("status = %v", body["status"])
		}
	})

	t.Run("version needs no actor", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/version", nil, nil)
		assertStatus(t, resp, http.StatusOK)
		data := dataField(t, decodeJSONMap(t, resp))
		if data["version"] != "dev" || data["apiVersion"] != "v1" {
			t.Errorf("version payload = %v", data)
		}
	})

	t.Run("status reports uptime", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/status", nil, nil)
		assertStatus(t, resp, http.StatusOK)
		data := dataField(t, decodeJSONMap(t, resp))
		if data["service"] != "readriser" {
			t.Errorf("service = %v", data["service"])
		}
		if _, ok := data["uptimeSeconds"].(float64); !ok {
			t.Errorf("uptimeSeconds missing: %v", data)
		}
	})

	t.Run("credits lists dependencies", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/credits", nil, nil)
		assertStatus(t, resp, http.StatusOK)
		data := dataField(t, decodeJSONMap(t, resp))
		if _, ok := data["credits"]; !ok {
			t.Errorf("credits missing: %v", data)
		}
	})
}
