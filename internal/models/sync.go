package models

import "fmt"

// SyncMode определяет направление синхронизации и политику разрешения конфликтов.
type SyncMode int

const (
	// SyncModePush загружает локальные изменения в облако без скачивания.
	SyncModePush SyncMode = iota + 1
	// SyncModePull скачивает изменения из облака без загрузки.
	SyncModePull
	// SyncModeMerge скачивает, разрешает конфликты по LWW и загружает.
	SyncModeMerge
	// SyncModeForcePush делает облако равным локальным данным.
	SyncModeForcePush
	// SyncModeForcePull делает локальные данные равными облаку.
	SyncModeForcePull
)

// Valid reports whether m is a known mode.
func (m SyncMode) Valid() bool {
	return m >= SyncModePush && m <= SyncModeForcePull
}

func (m SyncMode) String() string {
	switch m {
	case SyncModePush:
		return "push"
	case SyncModePull:
		return "pull"
	case SyncModeMerge:
		return "merge"
	case SyncModeForcePush:
		return "force_push"
	case SyncModeForcePull:
		return "force_pull"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseSyncMode converts a mode name back into a SyncMode.
func ParseSyncMode(s string) (SyncMode, error) {
	for m := SyncModePush; m <= SyncModeForcePull; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown sync mode %q", s)
}

// OpType is the action resolved for a downloaded row.
type OpType int

const (
	OpInsert OpType = iota
	OpUpdate
	OpDelete
	OpNotHandle
	OpOnlyUpdateGid
	OpLockedNotHandle
	OpSetCloudForcePushFlagZero
	OpSetCloudForcePushFlagOne
	OpClearGid
	OpUpdateTimestamp
)

var opTypeNames = map[OpType]string{
	OpInsert:                    "INSERT",
	OpUpdate:                    "UPDATE",
	OpDelete:                    "DELETE",
	OpNotHandle:                 "NOT_HANDLE",
	OpOnlyUpdateGid:             "ONLY_UPDATE_GID",
	OpLockedNotHandle:           "LOCKED_NOT_HANDLE",
	OpSetCloudForcePushFlagZero: "SET_CLOUD_FORCE_PUSH_FLAG_ZERO",
	OpSetCloudForcePushFlagOne:  "SET_CLOUD_FORCE_PUSH_FLAG_ONE",
	OpClearGid:                  "CLEAR_GID",
	OpUpdateTimestamp:           "UPDATE_TIMESTAMP",
}

func (o OpType) String() string {
	if name, ok := opTypeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("OpType(%d)", int(o))
}

// ChangesData reports whether applying o modifies user visible row content.
func (o OpType) ChangesData() bool {
	return o == OpInsert || o == OpUpdate || o == OpDelete
}

// WaterMarkType separates local watermarks kept for different upload modes.
type WaterMarkType int

const (
	WaterMarkNormal WaterMarkType = iota
	WaterMarkForcePush
)

func (w WaterMarkType) String() string {
	if w == WaterMarkForcePush {
		return "force_push"
	}
	return "normal"
}
