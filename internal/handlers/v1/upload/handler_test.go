package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/ingest"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// mockUploader is a mock for Uploader.
type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, filename string, file io.Reader) (*service.UploadResult, error) {
	args := m.Called(ctx, filename, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func createTestLogData() *logging.LogData {
	logger := logging.SetupLogging()
	return logging.NewLogData(logger)
}

func multipartRequest(t *testing.T, filename, contents string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/transactions/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandler_FullSuccess(t *testing.T) {
	mockSvc := new(mockUploader)
	mockSvc.On("Upload", mock.Anything, "statement.csv", mock.Anything).
		Return(&service.UploadResult{Inserted: 3}, nil)

	handler := NewHandler(mockSvc)
	w := httptest.NewRecorder()

	err := handler.Handler(w, multipartRequest(t, "statement.csv", "a,b\n1,2\n"), createTestLogData())
	assert.NoError(t, err)

	res := w.Result()
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var body SuccessResponse
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, 3, body.Inserted)
	mockSvc.AssertExpectations(t)
}

func TestHandler_RejectedFileReturnsRowReport(t *testing.T) {
	mockSvc := new(mockUploader)
	mockSvc.On("Upload", mock.Anything, "statement.csv", mock.Anything).
		Return(&service.UploadResult{Report: []ingest.RowReport{
			{Row: 7, Errors: []ingest.FieldError{{Field: ingest.FieldDate, Reason: "invalid date"}}},
		}}, nil)

	handler := NewHandler(mockSvc)
	w := httptest.NewRecorder()

	err := handler.Handler(w, multipartRequest(t, "statement.csv", "a,b\n1,2\n"), createTestLogData())
	assert.NoError(t, err)

	res := w.Result()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var body FailureResponse
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Len(t, body.Errors, 1)
	assert.Equal(t, 7, body.Errors[0].Row)
	mockSvc.AssertExpectations(t)
}

func TestHandler_UnsupportedFormat(t *testing.T) {
	mockSvc := new(mockUploader)
	mockSvc.On("Upload", mock.Anything, "statement.pdf", mock.Anything).
		Return(nil, ingest.ErrUnsupportedFormat)

	handler := NewHandler(mockSvc)
	w := httptest.NewRecorder()

	err := handler.Handler(w, multipartRequest(t, "statement.pdf", "%PDF"), createTestLogData())
	assert.Error(t, err)

	res := w.Result()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestHandler_BadMethod(t *testing.T) {
	handler := NewHandler(new(mockUploader))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/transactions/upload", nil)

	err := handler.Handler(w, req, createTestLogData())
	assert.Error(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Result().StatusCode)
}

func TestHandler_MissingFileField(t *testing.T) {
	handler := NewHandler(new(mockUploader))
	w := httptest.NewRecorder()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/transactions/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	err := handler.Handler(w, req, createTestLogData())
	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}
