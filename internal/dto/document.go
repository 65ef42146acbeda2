package dto

// ListDocumentsQuery captures raw list-view query parameters. Date bounds are
// free-text and validated by the service.
type ListDocumentsQuery struct {
	Search           string
	Archives         []string
	DocDateFrom      string
	DocDateTo        string
	ExpireDateFrom   string
	ExpireDateTo     string
	ExpireWithinDays *int
	SortBy           string
	SortOrder        string
	Page             int
	PageSize         int
}

// CreateDocumentRequest carries a new archive row. ID is optional; when
// omitted one is generated.
type CreateDocumentRequest struct {
	ID               string   `json:"id"`
	NumberTitle      string   `json:"numberTitle" binding:"required"`
	Description      string   `json:"description"`
	DocumentDate     string   `json:"documentDate"`
	ExpireDate       string   `json:"expireDate"`
	Contributors     []string `json:"contributors"`
	Archive          string   `json:"archive" binding:"required"`
	UpdatedCreatedBy string   `json:"updatedCreatedBy"`
}

// UpdateDocumentRequest mirrors the editable fields of a document.
type UpdateDocumentRequest struct {
	NumberTitle      string   `json:"numberTitle" binding:"required"`
	Description      string   `json:"description"`
	DocumentDate     string   `json:"documentDate"`
	ExpireDate       string   `json:"expireDate"`
	Contributors     []string `json:"contributors"`
	Archive          string   `json:"archive" binding:"required"`
	UpdatedCreatedBy string   `json:"updatedCreatedBy"`
}

// ArchiveSummary is one entry of the archive chip list.
type ArchiveSummary struct {
	Archive string `db:"archive" json:"archive"`
	Tone    string `db:"-" json:"tone"`
	Count   int    `db:"count" json:"count"`
}
