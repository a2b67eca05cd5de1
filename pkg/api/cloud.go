package api

// Record представляет облачную запись в JSON API
type Record struct {
	Data       map[string]any `json:"data,omitempty"`
	Deleted    *bool          `json:"deleted"`
	Gid        string         `json:"gid"`
	Version    string         `json:"version,omitempty"`
	Cursor     string         `json:"cursor,omitempty"`
	Device     string         `json:"device,omitempty"`
	Sharing    string         `json:"sharing,omitempty"`
	CreateTime int64          `json:"create_time"`
	ModifyTime int64          `json:"modify_time"`
}

// QueryRequest запрашивает страницу записей таблицы после курсора
type QueryRequest struct {
	User   string `json:"user"`
	Table  string `json:"table"`
	Cursor string `json:"cursor"`
	Limit  int    `json:"limit"`
}

// QueryResponse содержит страницу записей и курсор для продолжения
type QueryResponse struct {
	Cursor  string   `json:"cursor"`
	Records []Record `json:"records"`
	End     bool     `json:"end"`
}

// BatchRequest содержит пакет изменений одной таблицы
type BatchRequest struct {
	User    string   `json:"user"`
	Table   string   `json:"table"`
	Records []Record `json:"records"`
}

// RowResult результат обработки одной записи пакета
type RowResult struct {
	Gid        string `json:"gid,omitempty"`
	Version    string `json:"version,omitempty"`
	Cursor     string `json:"cursor,omitempty"`
	Error      string `json:"error,omitempty"`
	CreateTime int64  `json:"create_time,omitempty"`
	ModifyTime int64  `json:"modify_time,omitempty"`
}

// BatchResponse результаты пакета в порядке записей запроса
type BatchResponse struct {
	Results []RowResult `json:"results"`
}

// LockResponse содержит срок аренды облачной блокировки
type LockResponse struct {
	LeaseMillis int64 `json:"lease_ms"`
}

// ErrorResponse описывает ошибку API
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Error codes of the cloud API
const (
	CodeVersionConflict = "version_conflict"
	CodeLockConflict    = "lock_conflict"
	CodeLockNotHeld     = "lock_not_held"
	CodeNotFound        = "not_found"
	CodeAssetNotFound   = "asset_not_found"
	CodeInvalidRequest  = "invalid_request"
	CodeUnauthorized    = "unauthorized"
	CodeRateLimited     = "rate_limited"
	CodeInternal        = "internal"
)
