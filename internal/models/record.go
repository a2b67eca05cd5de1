package models

// Row is a single table row keyed by column name.
type Row map[string]any

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Values returns the values of the given columns in order.
func (r Row) Values(cols []string) []any {
	values := make([]any, 0, len(cols))
	for _, c := range cols {
		values = append(values, r[c])
	}
	return values
}

// Record is a row as stored in the cloud together with its cloud metadata.
// Times are in milliseconds.
type Record struct {
	Data       Row    `json:"data,omitempty"`
	Gid        string `json:"gid"`
	Version    string `json:"version,omitempty"`
	Cursor     string `json:"cursor,omitempty"`
	Device     string `json:"device,omitempty"`
	Sharing    string `json:"sharing,omitempty"`
	CreateTime int64  `json:"create_time"`
	ModifyTime int64  `json:"modify_time"`
	Deleted    bool   `json:"deleted"`
}

// LogInfo builds the comparable log view of a cloud record.
func (r *Record) LogInfo() LogInfo {
	info := LogInfo{
		CloudGid:        r.Gid,
		Version:         r.Version,
		Device:          r.Device,
		OriginDevice:    r.Device,
		SharingResource: r.Sharing,
		Timestamp:       r.ModifyTime * TimestampPerMilli,
		WriteTimestamp:  r.CreateTime * TimestampPerMilli,
	}
	if r.Deleted {
		info.Flag |= FlagDeleted
	}
	return info
}

// RowResult is the per-row outcome of a batched cloud mutation.
type RowResult struct {
	Err        error  `json:"-"`
	Gid        string `json:"gid"`
	Version    string `json:"version"`
	Cursor     string `json:"cursor"`
	CreateTime int64  `json:"create_time"`
	ModifyTime int64  `json:"modify_time"`
}

// DownloadData is one downloaded page with the op resolved for every record.
type DownloadData struct {
	User    string
	Records []Record
	Ops     []OpType
}

// UploadBucket holds rows of one mutation kind prepared for the cloud.
// Records and Logs are index aligned.
type UploadBucket struct {
	Records []Record
	Logs    []LogInfo
	Assets  []map[string]Assets
}

// Len returns the number of rows in the bucket.
func (b *UploadBucket) Len() int {
	return len(b.Records)
}

// Append adds a row to the bucket.
func (b *UploadBucket) Append(rec Record, log LogInfo, assets map[string]Assets) {
	b.Records = append(b.Records, rec)
	b.Logs = append(b.Logs, log)
	b.Assets = append(b.Assets, assets)
}

// UploadData is one page of local changes split into mutation buckets.
type UploadData struct {
	Table  string
	Insert UploadBucket
	Update UploadBucket
	Delete UploadBucket
}

// Len returns the total number of rows in all buckets.
func (d *UploadData) Len() int {
	return d.Insert.Len() + d.Update.Len() + d.Delete.Len()
}

// MaxTimestamp returns the newest local timestamp in the page.
func (d *UploadData) MaxTimestamp() int64 {
	var maxTs int64
	for _, b := range []*UploadBucket{&d.Insert, &d.Update, &d.Delete} {
		for i := range b.Logs {
			if b.Logs[i].Timestamp > maxTs {
				maxTs = b.Logs[i].Timestamp
			}
		}
	}
	return maxTs
}
