package roasts

import (
	"time"

	"hiremenot/internal/shared/util"
)

const previewLength = 50

type roastResponse struct {
	ID         string    `json:"id"`
	ResumeText string    `json:"resumeText"`
	RoastText  string    `json:"roastText"`
	CreatedAt  time.Time `json:"createdAt"`
	Upvotes    int       `json:"upvotes"`
}

type resultResponse struct {
	RoastID string        `json:"roastId"`
	Roast   roastResponse `json:"roast"`
	MemeURL *string       `json:"memeUrl"`
}

type upvoteResponse struct {
	RoastID string `json:"roastId"`
	Upvotes int    `json:"upvotes"`
}

type listItemResponse struct {
	ID            string    `json:"id"`
	ResumePreview string    `json:"resumePreview"`
	RoastText     string    `json:"roastText"`
	CreatedAt     time.Time `json:"createdAt"`
	Upvotes       int       `json:"upvotes"`
}

type listResponse struct {
	Items  []listItemResponse `json:"items"`
	Limit  int                `json:"limit,omitempty"`
	Offset int                `json:"offset,omitempty"`
}

func toRoastResponse(r Roast) roastResponse {
	return roastResponse{
		ID:         r.ID,
		ResumeText: r.ResumeText,
		RoastText:  r.RoastText,
		CreatedAt:  r.CreatedAt,
		Upvotes:    r.Upvotes,
	}
}

func toResultResponse(res Result) resultResponse {
	out := resultResponse{
		RoastID: res.Roast.ID,
		Roast:   toRoastResponse(res.Roast),
	}
	if res.MemeURL != "" {
		meme := res.MemeURL
		out.MemeURL = &meme
	}
	return out
}

func toListResponse(items []Roast, limit, offset int) listResponse {
	out := listResponse{
		Items:  make([]listItemResponse, 0, len(items)),
		Limit:  limit,
		Offset: offset,
	}
	for _, r := range items {
		out.Items = append(out.Items, listItemResponse{
			ID:            r.ID,
			ResumePreview: util.Preview(r.ResumeText, previewLength),
			RoastText:     r.RoastText,
			CreatedAt:     r.CreatedAt,
			Upvotes:       r.Upvotes,
		})
	}
	return out
}
