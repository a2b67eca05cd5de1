package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/cloud"
	"github.com/iudanet/cloudsync/internal/models"
	"github.com/iudanet/cloudsync/internal/validation"
	"github.com/iudanet/cloudsync/pkg/api"
)

//go:generate moq -out cloud_mock.go . CloudStore

// DefaultMaxBlobSize limits uploaded asset content.
const DefaultMaxBlobSize = 32 << 20

// CloudStore определяет интерфейс облачного хранилища записей
type CloudStore interface {
	Query(ctx context.Context, param *cloud.QueryParam) (*cloud.QueryResult, error)
	BatchInsert(ctx context.Context, req *cloud.BatchRequest) ([]models.RowResult, error)
	BatchUpdate(ctx context.Context, req *cloud.BatchRequest) ([]models.RowResult, error)
	BatchDelete(ctx context.Context, req *cloud.BatchRequest) ([]models.RowResult, error)

	Lock(ctx context.Context, owner string) (time.Duration, error)
	HeartBeat(ctx context.Context, owner string) error
	UnLock(ctx context.Context, owner string) error

	PutBlob(ctx context.Context, hash string, data []byte) error
	GetBlob(ctx context.Context, hash string) ([]byte, error)
}

// CloudHandler exposes CloudStore over HTTP.
// The lock owner is the device of the bearer token.
type CloudHandler struct {
	store       CloudStore
	logger      *zap.Logger
	maxBlobSize int64
}

// NewCloudHandler creates a new cloud handler
func NewCloudHandler(store CloudStore, logger *zap.Logger) *CloudHandler {
	return &CloudHandler{
		store:       store,
		logger:      logger,
		maxBlobSize: DefaultMaxBlobSize,
	}
}

// Routes mounts cloud endpoints on r.
func (h *CloudHandler) Routes(r chi.Router) {
	r.Post("/query", h.Query)
	r.Post("/records/insert", h.Insert)
	r.Post("/records/update", h.Update)
	r.Post("/records/delete", h.Delete)
	r.Post("/lock", h.Lock)
	r.Post("/heartbeat", h.HeartBeat)
	r.Post("/unlock", h.UnLock)
	r.Put("/blobs/{hash}", h.PutBlob)
	r.Get("/blobs/{hash}", h.GetBlob)
}

// Query обрабатывает POST /api/v1/cloud/query
func (h *CloudHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req api.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, api.CodeInvalidRequest, "invalid request body")
		return
	}
	if err := validation.ValidateTableName(req.Table); err != nil {
		h.writeError(w, r, http.StatusBadRequest, api.CodeInvalidRequest, err.Error())
		return
	}
	if err := validation.ValidateUser(req.User); err != nil {
		h.writeError(w, r, http.StatusBadRequest, api.CodeInvalidRequest, err.Error())
		return
	}

	result, err := h.store.Query(r.Context(), &cloud.QueryParam{
		User:   h.user(r, req.User),
		Table:  req.Table,
		Cursor: req.Cursor,
		Limit:  req.Limit,
	})
	if err != nil {
		h.writeCloudError(w, r, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, api.QueryResponse{
		Cursor:  result.Cursor,
		Records: cloud.ToAPIRecords(result.Records),
		End:     result.End,
	})
}

// Insert обрабатывает POST /api/v1/cloud/records/insert
func (h *CloudHandler) Insert(w http.ResponseWriter, r *http.Request) {
	h.batch(w, r, h.store.BatchInsert)
}

// Update обрабатывает POST /api/v1/cloud/records/update
func (h *CloudHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.batch(w, r, h.store.BatchUpdate)
}

// Delete обрабатывает POST /api/v1/cloud/records/delete
func (h *CloudHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.batch(w, r, h.store.BatchDelete)
}

type batchFunc func(ctx context.Context, req *cloud.BatchRequest) ([]models.RowResult, error)

func (h *CloudHandler) batch(w http.ResponseWriter, r *http.Request, fn batchFunc) {
	var req api.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, api.CodeInvalidRequest, "invalid request body")
		return
	}
	if err := validation.ValidateTableName(req.Table); err != nil {
		h.writeError(w, r, http.StatusBadRequest, api.CodeInvalidRequest, err.Error())
		return
	}
	if err := validation.ValidateUser(req.User); err != nil {
		h.writeError(w, r, http.StatusBadRequest, api.CodeInvalidRequest, err.Error())
		return
	}

	records, err := cloud.FromAPIRecords(req.Records)
	if err != nil {
		h.writeCloudError(w, r, err)
		return
	}

	results, err := fn(r.Context(), &cloud.BatchRequest{
		User:    h.user(r, req.User),
		Table:   req.Table,
		Records: records,
	})
	if err != nil {
		h.writeCloudError(w, r, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, api.BatchResponse{Results: cloud.ToAPIResults(results)})
}

// Lock обрабатывает POST /api/v1/cloud/lock
func (h *CloudHandler) Lock(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	lease, err := h.store.Lock(r.Context(), owner)
	if err != nil {
		h.writeCloudError(w, r, err)
		return
	}
	h.logger.Debug("cloud lock acquired", zap.String("owner", owner), zap.Duration("lease", lease))
	writeJSON(w, h.logger, http.StatusOK, api.LockResponse{LeaseMillis: lease.Milliseconds()})
}

// HeartBeat обрабатывает POST /api/v1/cloud/heartbeat
func (h *CloudHandler) HeartBeat(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	if err := h.store.HeartBeat(r.Context(), owner); err != nil {
		h.writeCloudError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnLock обрабатывает POST /api/v1/cloud/unlock
func (h *CloudHandler) UnLock(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	if err := h.store.UnLock(r.Context(), owner); err != nil {
		h.writeCloudError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PutBlob обрабатывает PUT /api/v1/cloud/blobs/{hash}
func (h *CloudHandler) PutBlob(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBlobSize))
	if err != nil {
		h.writeError(w, r, http.StatusRequestEntityTooLarge, api.CodeInvalidRequest, "blob is too large")
		return
	}
	if err := h.store.PutBlob(r.Context(), hash, data); err != nil {
		h.writeCloudError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBlob обрабатывает GET /api/v1/cloud/blobs/{hash}
func (h *CloudHandler) GetBlob(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.GetBlob(r.Context(), chi.URLParam(r, "hash"))
	if err != nil {
		h.writeCloudError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("failed to write blob", zap.Error(err))
	}
}

// user returns the requested data owner, defaulting to the token user.
func (h *CloudHandler) user(r *http.Request, requested string) string {
	if requested != "" {
		return requested
	}
	userID, _ := GetUserID(r.Context())
	return userID
}

func (h *CloudHandler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	deviceID, ok := GetDeviceID(r.Context())
	if !ok || deviceID == "" {
		h.writeError(w, r, http.StatusUnauthorized, api.CodeUnauthorized, "device is not authenticated")
		return "", false
	}
	return deviceID, true
}

// StatusCode maps a cloud error to the HTTP status of the API.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, cloud.ErrVersionConflict), errors.Is(err, cloud.ErrLockNotHeld):
		return http.StatusConflict
	case errors.Is(err, cloud.ErrLockConflict):
		return http.StatusLocked
	case errors.Is(err, cloud.ErrRecordNotFound), errors.Is(err, cloud.ErrAssetNotFound):
		return http.StatusNotFound
	case errors.Is(err, cloud.ErrInvalidRecord):
		return http.StatusBadRequest
	case errors.Is(err, cloud.ErrCloudError):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *CloudHandler) writeCloudError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("cloud request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	h.writeError(w, r, status, cloud.ErrorCode(err), err.Error())
}

func (h *CloudHandler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, h.logger, status, api.ErrorResponse{Error: code, Message: message})
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
