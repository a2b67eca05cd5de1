package models

// TimestampPerMilli is the number of local timestamp units (100ns) in one millisecond.
const TimestampPerMilli = 10000

// Log flags
const (
	// FlagDeleted помечает tombstone строки.
	FlagDeleted uint64 = 1 << iota
	// FlagLocal строка изменена на этом устройстве.
	FlagLocal
	// FlagCloudConsistent строка совпадает с облаком, загружать нечего.
	FlagCloudConsistent
	// FlagUploading строка передана в облако, ответ еще не получен.
	FlagUploading
)

// LockStatus описывает блокировку строки приложением.
type LockStatus uint32

const (
	LockStatusUnlocked LockStatus = iota
	LockStatusLocked
)

// LogInfo is the sync metadata kept next to every local row.
// The same shape is built from a cloud record so both sides can be compared.
type LogInfo struct {
	HashKey         string     `json:"hash_key"`
	CloudGid        string     `json:"cloud_gid,omitempty"`
	Version         string     `json:"version,omitempty"`
	Device          string     `json:"device"`
	OriginDevice    string     `json:"origin_device,omitempty"`
	SharingResource string     `json:"sharing_resource,omitempty"`
	Timestamp       int64      `json:"timestamp"`
	WriteTimestamp  int64      `json:"write_timestamp"`
	Flag            uint64     `json:"flag"`
	Status          LockStatus `json:"status"`
}

// IsDeleted reports whether the log describes a tombstone.
func (l *LogInfo) IsDeleted() bool {
	return l.Flag&FlagDeleted != 0
}

// IsLocked reports whether the row is locked by the application.
func (l *LogInfo) IsLocked() bool {
	return l.Status == LockStatusLocked
}

// IsConsistent reports whether the row has nothing left to upload.
func (l *LogInfo) IsConsistent() bool {
	return l.Flag&FlagCloudConsistent != 0
}

// Millis returns the modify timestamp truncated to milliseconds.
func (l *LogInfo) Millis() int64 {
	return l.Timestamp / TimestampPerMilli
}

// CompareLogs сравнивает время изменения двух логов с точностью до миллисекунды.
// При равном времени сравниваются идентификаторы устройств как строки.
// Возвращает 1 если a новее, -1 если b новее, 0 если записи неразличимы.
func CompareLogs(a, b *LogInfo) int {
	am, bm := a.Millis(), b.Millis()
	switch {
	case am > bm:
		return 1
	case am < bm:
		return -1
	case a.Device > b.Device:
		return 1
	case a.Device < b.Device:
		return -1
	default:
		return 0
	}
}

// DataInfoWithLog is a local row found by primary key or gid.
type DataInfoWithLog struct {
	PrimaryKeys Row               `json:"primary_keys"`
	Assets      map[string]Assets `json:"assets,omitempty"`
	Log         LogInfo           `json:"log"`
}
