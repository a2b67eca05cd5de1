package models

import (
	"encoding/json"
	"fmt"
)

// AssetStatus is the materialization state of an attachment.
type AssetStatus int

const (
	AssetNormal AssetStatus = iota
	AssetInsert
	AssetUpdate
	AssetDelete
	AssetAbnormal
	AssetDownloading
)

// Asset describes a binary attachment referenced by a row column.
type Asset struct {
	Name       string      `json:"name"`
	URI        string      `json:"uri,omitempty"`
	Hash       string      `json:"hash"`
	Size       int64       `json:"size"`
	ModifyTime int64       `json:"modify_time,omitempty"`
	Status     AssetStatus `json:"status"`
}

// Assets is the value of a multi-asset column.
type Assets []Asset

// ExtractAssets collects asset values of the given columns.
// Values decoded from JSON come back as maps and slices and are converted here.
func ExtractAssets(row Row, fields []string) (map[string]Assets, error) {
	out := make(map[string]Assets)
	for _, f := range fields {
		v, ok := row[f]
		if !ok || v == nil {
			continue
		}
		assets, err := toAssets(v)
		if err != nil {
			return nil, fmt.Errorf("failed to decode asset column %s: %w", f, err)
		}
		if len(assets) > 0 {
			out[f] = assets
		}
	}
	return out, nil
}

func toAssets(v any) (Assets, error) {
	switch a := v.(type) {
	case Asset:
		return Assets{a}, nil
	case *Asset:
		return Assets{*a}, nil
	case Assets:
		return append(Assets(nil), a...), nil
	case []Asset:
		return append(Assets(nil), a...), nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 && raw[0] == '[' {
		var list Assets
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var single Asset
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, err
	}
	return Assets{single}, nil
}

// ApplyAssets writes asset values back into the row keeping the column shape:
// single asset columns stay single, list columns stay lists.
func ApplyAssets(row Row, assets map[string]Assets) {
	for f, list := range assets {
		if isSingleAsset(row[f]) && len(list) == 1 {
			row[f] = list[0]
			continue
		}
		row[f] = list
	}
}

func isSingleAsset(v any) bool {
	switch v.(type) {
	case Asset, *Asset, map[string]any:
		return true
	}
	return false
}

// SetAssetStatus returns a copy of assets with every status replaced.
func SetAssetStatus(assets map[string]Assets, status AssetStatus) map[string]Assets {
	out := make(map[string]Assets, len(assets))
	for f, list := range assets {
		cp := make(Assets, len(list))
		for i := range list {
			cp[i] = list[i]
			cp[i].Status = status
		}
		out[f] = cp
	}
	return out
}

// DownloadItem is a downloaded row queued for asset materialization.
type DownloadItem struct {
	Assets      map[string]Assets
	PrimaryKeys Row
	Gid         string
	Prefix      string
	HashKey     string
	Op          OpType
	Timestamp   int64
}
