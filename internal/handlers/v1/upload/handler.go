package upload

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/carson-networks/ledger-server/internal/ingest"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// maxUploadMemory caps how much of the multipart body is held in memory.
const maxUploadMemory = 32 << 20

// Uploader is the interface for processing statement uploads.
type Uploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (*service.UploadResult, error)
}

// SuccessResponse is the body returned when every row was inserted.
type SuccessResponse struct {
	Inserted int `json:"inserted"`
}

// FailureResponse is the body returned when the file was rejected. Nothing
// was inserted.
type FailureResponse struct {
	Errors []ingest.RowReport `json:"errors"`
}

// Handler handles POST /v1/transactions/upload. It stays a plain
// http.Handler because Huma's typed request model does not fit streaming
// multipart uploads.
type Handler struct {
	UploadService Uploader
}

func NewHandler(svc Uploader) Handler {
	return Handler{UploadService: svc}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return errors.New("upload: method not POST")
	}

	if err := req.ParseMultipartForm(maxUploadMemory); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return err
	}
	file, header, err := req.FormFile("file")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return err
	}
	defer file.Close()

	logData.AddData("filename", header.Filename)

	stopTimer := logData.AddTiming("uploadMs")
	result, err := h.UploadService.Upload(req.Context(), header.Filename, file)
	stopTimer()
	if errors.Is(err, ingest.ErrUnsupportedFormat) {
		w.WriteHeader(http.StatusBadRequest)
		return err
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	if len(result.Report) > 0 {
		logData.AddData("rejectedRows", len(result.Report))
		w.WriteHeader(http.StatusBadRequest)
		return json.NewEncoder(w).Encode(FailureResponse{Errors: result.Report})
	}

	logData.AddData("insertedRows", result.Inserted)
	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(SuccessResponse{Inserted: result.Inserted})
}
