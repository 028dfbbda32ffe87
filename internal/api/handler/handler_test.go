package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/mkallio/fridgechef/internal/api/handler"
	"github.com/mkallio/fridgechef/internal/config"
	"github.com/mkallio/fridgechef/internal/llm"
	"github.com/mkallio/fridgechef/internal/service"
)

// stubProvider returns a canned model response without any network call
type stubProvider struct {
	text string
	err  error
}

func (p *stubProvider) Name() string         { return "stub" }
func (p *stubProvider) DefaultModel() string { return "stub-model" }
func (p *stubProvider) IsConfigured() bool   { return true }

func (p *stubProvider) AnalyzeImage(ctx context.Context, req llm.VisionRequest, model string) (*llm.VisionResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &llm.VisionResponse{Text: p.text, Model: "stub-model"}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Upload: config.UploadConfig{
			MaxSizeBytes: 10 << 20,
			AllowedTypes: []string{"image/jpeg", "image/png", "image/webp", "image/heic"},
		},
	}
}

func newAnalyzeHandler(provider llm.VisionProvider) *handler.AnalyzeHandler {
	svc := service.NewAnalysisService(testConfig(), nil, provider)
	return handler.NewAnalyzeHandler(svc, nil)
}

// analyzeRequest builds a multipart request the way the web client submits it
func analyzeRequest(t *testing.T, fields map[string]string, withImage bool) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if withImage {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="image"; filename="fridge.jpg"`)
		h.Set("Content-Type", "image/jpeg")
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("failed to create image part: %v", err)
		}
		if _, err := part.Write([]byte("jpeg-bytes")); err != nil {
			t.Fatalf("failed to write image part: %v", err)
		}
	}

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			t.Fatalf("failed to write field %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeAnalyzeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}

const stubRecipe = `{
	"title": "Veggie Omelette",
	"description": "A quick omelette from leftovers.",
	"cookingTime": "15 minutes",
	"difficulty": "Easy",
	"servings": 2,
	"ingredients": ["3 eggs", "1 bell pepper"],
	"instructions": ["Whisk the eggs.", "Fry everything."]
}`

func TestAnalyze_Success(t *testing.T) {
	h := newAnalyzeHandler(&stubProvider{text: stubRecipe})

	req := analyzeRequest(t, map[string]string{"locale": "en"}, true)
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	body := decodeAnalyzeResponse(t, rec)
	if body["success"] != true {
		t.Error("expected success to be true")
	}

	recipe, ok := body["recipe"].(map[string]any)
	if !ok {
		t.Fatal("expected recipe to be a map")
	}
	if recipe["title"] != "Veggie Omelette" {
		t.Errorf("expected recipe title, got %v", recipe["title"])
	}
	if recipe["difficulty"] != "Easy" {
		t.Errorf("expected difficulty Easy, got %v", recipe["difficulty"])
	}
	if _, ok := body["processingTime"]; !ok {
		t.Error("expected processingTime in response")
	}
}

func TestAnalyze_TranslatedDifficultyIsBadGateway(t *testing.T) {
	translated := bytes.Replace([]byte(stubRecipe), []byte(`"Easy"`), []byte(`"Fácil"`), 1)
	h := newAnalyzeHandler(&stubProvider{text: string(translated)})

	req := analyzeRequest(t, map[string]string{"locale": "es"}, true)
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, rec.Code)
	}

	body := decodeAnalyzeResponse(t, rec)
	if body["success"] != false {
		t.Error("expected success to be false")
	}
	errMsg, _ := body["error"].(string)
	if errMsg == "" {
		t.Error("expected an error message")
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("Fácil")) {
		t.Error("raw model output must not leak into the response")
	}
}

func TestAnalyze_NoImage(t *testing.T) {
	h := newAnalyzeHandler(&stubProvider{text: stubRecipe})

	req := analyzeRequest(t, map[string]string{"locale": "en"}, false)
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}

	body := decodeAnalyzeResponse(t, rec)
	if body["error"] != "No image file provided" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

func TestAnalyze_ProviderAuthFailure(t *testing.T) {
	h := newAnalyzeHandler(&stubProvider{
		err: &llm.ProviderError{Provider: "stub", StatusCode: http.StatusUnauthorized, Message: "invalid x-api-key"},
	})

	req := analyzeRequest(t, nil, true)
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("invalid x-api-key")) {
		t.Error("provider error detail must not leak into the response")
	}
}

func TestAnalyze_GenericProviderFailure(t *testing.T) {
	h := newAnalyzeHandler(&stubProvider{err: errors.New("connection reset by peer")})

	req := analyzeRequest(t, nil, true)
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("connection reset")) {
		t.Error("internal error detail must not leak into the response")
	}
}

func TestAnalyze_InvalidMultipart(t *testing.T) {
	h := newAnalyzeHandler(&stubProvider{text: stubRecipe})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewBufferString("not multipart"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=missing")
	rec := httptest.NewRecorder()
	h.Analyze(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyze", nil)
	rec := httptest.NewRecorder()

	handler.MethodNotAllowed(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}

	body := decodeAnalyzeResponse(t, rec)
	if body["success"] != false {
		t.Error("expected success to be false")
	}
	if body["error"] != "Method not allowed" {
		t.Errorf("unexpected error message: %v", body["error"])
	}
}

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	handler.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response["success"] != true {
		t.Error("expected success to be true")
	}

	data, ok := response["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data to be a map")
	}

	if data["status"] != "ok" {
		t.Errorf("expected status 'ok', got %v", data["status"])
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantValid bool
	}{
		{"valid key", `{"apiKey": "sk-ant-api03-abcdef"}`, true},
		{"bare prefix", `{"apiKey": "sk-ant-api"}`, true},
		{"wrong prefix", `{"apiKey": "sk-openai-xyz"}`, false},
		{"empty key", `{"apiKey": ""}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/validate-key", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.ValidateKey(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
			}

			var body map[string]any
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body["isValid"] != tt.wantValid {
				t.Errorf("isValid = %v, want %v", body["isValid"], tt.wantValid)
			}
			if !tt.wantValid {
				if msg, _ := body["error"].(string); msg == "" {
					t.Error("expected an error message for invalid key")
				}
			}
		})
	}
}
