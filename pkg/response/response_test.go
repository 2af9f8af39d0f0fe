package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSuccessWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-123")

	Success(c, http.StatusCreated, gin.H{"id": "42"}, "created", nil)

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != true {
		t.Error("success = false")
	}
	if body["statusCode"] != float64(http.StatusCreated) {
		t.Errorf("statusCode = %v", body["statusCode"])
	}
	if body["message"] != "created" {
		t.Errorf("message = %v", body["message"])
	}
	if body["request_id"] != "req-123" {
		t.Errorf("request_id = %v", body["request_id"])
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["id"] != "42" {
		t.Errorf("data = %v", body["data"])
	}
}

func TestErrorWritesEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error[any](c, http.StatusConflict, "already exists", map[string]string{"username": "taken"})

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != false {
		t.Error("success = true on error response")
	}
	if body["message"] != "already exists" {
		t.Errorf("message = %v", body["message"])
	}
	if _, ok := body["data"]; ok {
		t.Error("error response carries data field")
	}
}

func TestZeroStatusDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Success(c, 0, gin.H{}, "ok", nil)
	if w.Code != http.StatusOK {
		t.Errorf("success default status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Error[any](c, 0, "bad", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("error default status = %d, want 400", w.Code)
	}
}
