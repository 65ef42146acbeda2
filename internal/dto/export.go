package dto

// ExportQuery extends the list criteria with rendering options. The export
// always covers the filtered and sorted set before pagination.
type ExportQuery struct {
	ListDocumentsQuery
	Format string
	Title  string
}
