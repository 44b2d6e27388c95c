package dtos

type JobRequest struct {
	JobTitle string `json:"job_title" binding:"required"`
	Company  string `json:"company" binding:"required"`
	Status   string `json:"status" binding:"required"`
	Date     string `json:"date" binding:"required"`

	// Optional Fields
	Location string `json:"location"`
	Link     string `json:"link"`
}

// IngestRequest carries raw scraped text from the browser extension.
type IngestRequest struct {
	Text string `json:"text" binding:"required"`
}

type IngestResponse struct {
	Status     string         `json:"status"`
	Received   string         `json:"received"`
	JobDetails map[string]any `json:"job_details"`
}
