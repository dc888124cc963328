package model

import "time"

// DocumentStatus is the processing state of an uploaded source document.
type DocumentStatus string

const (
	StatusPending    DocumentStatus = "pending"
	StatusProcessing DocumentStatus = "processing"
	StatusDone       DocumentStatus = "done"
	StatusError      DocumentStatus = "error"
)

// FileType is the declared format of an uploaded document.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
)

// DocumentMetadata describes an uploaded source document and its extraction status.
// StorageKey is the object key in the blob store; URL is what clients and the HTTP fetcher use.
type DocumentMetadata struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	URL           string         `json:"url"`
	StorageKey    string         `json:"storage_key,omitempty"`
	UploadedAt    time.Time      `json:"uploadedAt"`
	Status        DocumentStatus `json:"status"`
	Type          FileType       `json:"type"`
	QuestionCount *int           `json:"questionCount,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// MarkProcessing moves the document into the processing state and clears a previous error.
func (d *DocumentMetadata) MarkProcessing() {
	d.Status = StatusProcessing
	d.Error = ""
}

// MarkDone records a successful extraction.
func (d *DocumentMetadata) MarkDone(count int) {
	d.Status = StatusDone
	d.QuestionCount = &count
	d.Error = ""
}

// MarkError records a failed extraction. The previous question count is kept.
func (d *DocumentMetadata) MarkError(msg string) {
	d.Status = StatusError
	d.Error = msg
}
