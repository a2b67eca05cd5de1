package syncer

import (
	"fmt"

	"github.com/iudanet/cloudsync/internal/models"
)

// Strategy resolves what to do with a downloaded row and which phases a mode runs.
type Strategy interface {
	// TagSyncDataStatus returns the op for a cloud record.
	// local is nil when no local row matches.
	TagSyncDataStatus(local, cloud *models.LogInfo) models.OpType
	JudgeUpload() bool
	JudgeDownload() bool
	NeedLock() bool
}

// NewStrategy returns the strategy of a sync mode.
func NewStrategy(mode models.SyncMode) (Strategy, error) {
	switch mode {
	case models.SyncModeMerge:
		return mergeStrategy{}, nil
	case models.SyncModeForcePull:
		return forcePullStrategy{}, nil
	case models.SyncModeForcePush:
		return forcePushStrategy{}, nil
	case models.SyncModePush:
		return pushStrategy{}, nil
	case models.SyncModePull:
		return pullStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown mode %s", ErrInvalidArgs, mode)
	}
}

// isCloudWin reports whether the cloud version is newer than the local one.
func isCloudWin(local, cloud *models.LogInfo) bool {
	return models.CompareLogs(cloud, local) > 0
}

// isSameRecord reports whether the cloud record is exactly what this row last synced.
func isSameRecord(local, cloud *models.LogInfo) bool {
	return local.CloudGid != "" &&
		local.CloudGid == cloud.CloudGid &&
		local.Device == cloud.Device &&
		local.Millis() == cloud.Millis() &&
		local.IsDeleted() == cloud.IsDeleted()
}

type mergeStrategy struct{}

func (mergeStrategy) TagSyncDataStatus(local, cloud *models.LogInfo) models.OpType {
	if local == nil {
		if cloud.IsDeleted() {
			return models.OpNotHandle
		}
		return models.OpInsert
	}
	if local.IsLocked() {
		return models.OpLockedNotHandle
	}
	if isSameRecord(local, cloud) {
		return models.OpNotHandle
	}

	if isCloudWin(local, cloud) {
		switch {
		case cloud.IsDeleted() && local.IsDeleted():
			return models.OpUpdateTimestamp
		case cloud.IsDeleted():
			return models.OpDelete
		case local.IsDeleted():
			return models.OpInsert
		default:
			return models.OpUpdate
		}
	}

	// локальная версия новее, облако только сообщает свою идентичность
	switch {
	case local.CloudGid == "":
		if cloud.IsDeleted() {
			return models.OpNotHandle
		}
		return models.OpOnlyUpdateGid
	case cloud.IsDeleted():
		return models.OpClearGid
	case local.CloudGid != cloud.CloudGid, local.Version != cloud.Version:
		return models.OpOnlyUpdateGid
	default:
		return models.OpNotHandle
	}
}

func (mergeStrategy) JudgeUpload() bool   { return true }
func (mergeStrategy) JudgeDownload() bool { return true }
func (mergeStrategy) NeedLock() bool      { return true }

type forcePullStrategy struct{}

func (forcePullStrategy) TagSyncDataStatus(local, cloud *models.LogInfo) models.OpType {
	if local == nil {
		if cloud.IsDeleted() {
			return models.OpNotHandle
		}
		return models.OpInsert
	}
	if local.IsLocked() {
		return models.OpLockedNotHandle
	}
	if isSameRecord(local, cloud) {
		return models.OpNotHandle
	}
	switch {
	case cloud.IsDeleted() && local.IsDeleted():
		return models.OpUpdateTimestamp
	case cloud.IsDeleted():
		return models.OpDelete
	case local.IsDeleted():
		return models.OpInsert
	default:
		return models.OpUpdate
	}
}

func (forcePullStrategy) JudgeUpload() bool   { return false }
func (forcePullStrategy) JudgeDownload() bool { return true }
func (forcePullStrategy) NeedLock() bool      { return false }

type forcePushStrategy struct{}

func (forcePushStrategy) TagSyncDataStatus(local, cloud *models.LogInfo) models.OpType {
	if local == nil {
		return models.OpNotHandle
	}
	if local.IsLocked() {
		return models.OpLockedNotHandle
	}
	switch {
	case local.CloudGid == "":
		if cloud.IsDeleted() {
			return models.OpNotHandle
		}
		return models.OpOnlyUpdateGid
	case cloud.IsDeleted():
		return models.OpClearGid
	case local.CloudGid != cloud.CloudGid:
		return models.OpOnlyUpdateGid
	case isSameRecord(local, cloud):
		if local.IsConsistent() {
			return models.OpNotHandle
		}
		// строка уже лежит в облаке, повторно отправлять ее не нужно
		return models.OpSetCloudForcePushFlagOne
	default:
		// облачная версия отличается - строку нужно загрузить заново
		return models.OpSetCloudForcePushFlagZero
	}
}

func (forcePushStrategy) JudgeUpload() bool   { return true }
func (forcePushStrategy) JudgeDownload() bool { return true }
func (forcePushStrategy) NeedLock() bool      { return true }

// pushStrategy uploads local changes only and never looks at cloud rows.
type pushStrategy struct{}

func (pushStrategy) TagSyncDataStatus(local, cloud *models.LogInfo) models.OpType {
	return models.OpNotHandle
}

func (pushStrategy) JudgeUpload() bool   { return true }
func (pushStrategy) JudgeDownload() bool { return false }
func (pushStrategy) NeedLock() bool      { return false }

// pullStrategy applies cloud changes with merge rules and never uploads.
type pullStrategy struct {
	mergeStrategy
}

func (pullStrategy) JudgeUpload() bool { return false }
func (pullStrategy) NeedLock() bool    { return false }
