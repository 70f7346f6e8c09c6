package report

// Report is one lost-item report record.
type Report struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Location      string  `json:"location"`
	Status        string  `json:"status"`
	ContactInfo   string  `json:"contact_info"`
	ImageFilename *string `json:"image_filename"`
	CreatedAt     string  `json:"created_at"`
}

// CreateFields carries the caller-supplied fields for a new report.
type CreateFields struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Location      string  `json:"location"`
	Status        string  `json:"status"`
	ContactInfo   string  `json:"contact_info"`
	ImageFilename *string `json:"image_filename"`
}
