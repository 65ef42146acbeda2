package dto

// CreateShortlinkRequest registers a new short code for a target URL.
type CreateShortlinkRequest struct {
	TargetURL string `json:"targetUrl" binding:"required,url"`
	Code      string `json:"code" binding:"omitempty,alphanum,min=3,max=32"`
}
