package roasts

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hiremenot/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc                *Service
	LeaderboardEnabled bool
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, leaderboardEnabled bool) *Handler {
	return &Handler{Svc: svc, LeaderboardEnabled: leaderboardEnabled}
}

// RegisterRoutes attaches roast routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/roasts", h.upload)
	rg.GET("/roasts", h.list)
	if h.LeaderboardEnabled {
		rg.GET("/roasts/top", h.top)
	}
	rg.GET("/roasts/:id", h.get)
	rg.POST("/roasts/:id/again", h.again)
	rg.POST("/roasts/:id/upvote", h.upvote)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	sub, err := readSubmission(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "Upload exceeds the 10MB limit.", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Unable to read the submitted resume.", nil)
		return
	}

	res, err := h.Svc.Upload(c.Request.Context(), sub)
	if err != nil {
		fail(c, err, nil)
		return
	}

	c.Set(respond.RoastIDKey, res.Roast.ID)
	respond.Created(c, toResultResponse(res))
}

// readSubmission collects resume_file and resume_text from a multipart or urlencoded form.
func readSubmission(c *gin.Context) (Submission, error) {
	var sub Submission

	fileHeader, err := c.FormFile("resume_file")
	switch {
	case err == nil:
		f, err := fileHeader.Open()
		if err != nil {
			return Submission{}, err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return Submission{}, err
		}
		sub.File = &UploadedFile{Name: fileHeader.Filename, Data: data}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		return Submission{}, err
	}

	if text, ok := c.GetPostForm("resume_text"); ok {
		sub.Text = &text
	}
	return sub, nil
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(respond.RoastIDKey, id)

	res, err := h.Svc.GetResult(c.Request.Context(), id)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond.OK(c, toResultResponse(res))
}

func (h *Handler) again(c *gin.Context) {
	id := c.Param("id")

	res, err := h.Svc.RoastAgain(c.Request.Context(), id)
	if err != nil {
		c.Set(respond.RoastIDKey, id)
		fail(c, err, gin.H{"roastId": id})
		return
	}

	c.Set(respond.RoastIDKey, res.Roast.ID)
	respond.Created(c, toResultResponse(res))
}

func (h *Handler) upvote(c *gin.Context) {
	id := c.Param("id")
	c.Set(respond.RoastIDKey, id)

	upvotes, err := h.Svc.Upvote(c.Request.Context(), id)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond.OK(c, upvoteResponse{RoastID: id, Upvotes: upvotes})
}

func (h *Handler) top(c *gin.Context) {
	limit := parseInt(c.Query("limit"), defaultTopLimit)

	items, err := h.Svc.ListTopRanked(c.Request.Context(), limit)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond.OK(c, toListResponse(items, clampLimit(limit, defaultTopLimit), 0))
}

func (h *Handler) list(c *gin.Context) {
	q := ListQuery{
		Limit:  parseInt(c.Query("limit"), defaultListLimit),
		Offset: parseInt(c.Query("offset"), 0),
		Search: c.Query("q"),
	}

	items, err := h.Svc.ListRecent(c.Request.Context(), q)
	if err != nil {
		fail(c, err, nil)
		return
	}
	respond.OK(c, toListResponse(items, clampLimit(q.Limit, defaultListLimit), q.Offset))
}

func fail(c *gin.Context, err error, details interface{}) {
	f := Classify(err)
	respond.Error(c, f.Status, f.Code, f.Message, details)
}

func parseInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}
