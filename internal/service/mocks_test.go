package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/mkallio/fridgechef/internal/llm"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockVisionProvider mocks the llm.VisionProvider interface
type MockVisionProvider struct {
	mock.Mock
}

func (m *MockVisionProvider) Name() string {
	return "mock"
}

func (m *MockVisionProvider) DefaultModel() string {
	return "mock-model"
}

func (m *MockVisionProvider) IsConfigured() bool {
	return true
}

func (m *MockVisionProvider) AnalyzeImage(ctx context.Context, req llm.VisionRequest, model string) (*llm.VisionResponse, error) {
	args := m.Called(ctx, req, model)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.VisionResponse), args.Error(1)
}

// imageFiles builds real multipart file headers so the pipeline can open and
// read them like a live upload
func imageFiles(t *testing.T, contentType string, data []byte) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="image"; filename="fridge.jpg"`)
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["image"]
}
