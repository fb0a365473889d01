package roasts

import "time"

// Roast is the persisted pairing of a resume with its generated critique.
// Only Upvotes changes after creation.
type Roast struct {
	ID         string    `json:"id"`
	ResumeText string    `json:"resumeText"`
	RoastText  string    `json:"roastText"`
	CreatedAt  time.Time `json:"createdAt"`
	Upvotes    int       `json:"upvotes"`
}

// UploadedFile is a file payload from a submission.
type UploadedFile struct {
	Name string
	Data []byte
}

// Submission is the raw user input. A nil field means the field was not sent.
type Submission struct {
	File *UploadedFile
	Text *string
}

// Result is a roast plus an optional decorative GIF URL ("" when unavailable).
type Result struct {
	Roast   Roast  `json:"roast"`
	MemeURL string `json:"memeUrl,omitempty"`
}

// ListQuery filters the recent-roasts listing.
type ListQuery struct {
	Limit  int
	Offset int
	Search string
}
