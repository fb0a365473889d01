package roasts

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"hiremenot/internal/llm"
	"hiremenot/internal/shared/metrics"
	"hiremenot/internal/shared/telemetry"
	"hiremenot/internal/shared/util"
)

// Meme tags used at each stage.
const (
	UploadMemeTag = "roasted"
	ResultMemeTag = "funny"
)

// MemeFinder is a best-effort GIF lookup. ok is false when nothing is available.
type MemeFinder interface {
	Random(ctx context.Context, tag string) (url string, ok bool)
}

// Service runs the roast pipeline: resolve, validate, generate, meme lookup, persist.
type Service struct {
	Repo      Repo
	Resolver  Resolver
	Validator Validator
	LLM       llm.Generator
	Memes     MemeFinder
}

// Upload runs the full pipeline for a new submission. Nothing is persisted on failure.
func (s *Service) Upload(ctx context.Context, sub Submission) (Result, error) {
	metrics.IncRoastRequests()

	text, err := s.Resolver.Resolve(ctx, sub)
	if err != nil {
		s.reject("resolve", err)
		return Result{}, err
	}
	if err := s.Validator.Validate(text); err != nil {
		s.reject("validate", err)
		return Result{}, err
	}
	return s.roast(ctx, text, UploadMemeTag, "")
}

// RoastAgain generates a fresh roast for an existing record's resume text.
// The original record is left untouched.
func (s *Service) RoastAgain(ctx context.Context, id string) (Result, error) {
	orig, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Result{}, err
	}
	metrics.IncRoastRequests()
	return s.roast(ctx, orig.ResumeText, UploadMemeTag, orig.ID)
}

// GetResult returns a roast with a decorative GIF when one is available.
func (s *Service) GetResult(ctx context.Context, id string) (Result, error) {
	roast, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Result{}, err
	}
	return Result{Roast: roast, MemeURL: s.meme(ctx, ResultMemeTag)}, nil
}

// Upvote atomically increments the roast's counter and returns the new count.
func (s *Service) Upvote(ctx context.Context, id string) (int, error) {
	upvotes, err := s.Repo.IncrementUpvote(ctx, id)
	if err != nil {
		return 0, err
	}
	metrics.IncUpvotes()
	telemetry.Info("roast.upvoted", map[string]any{"roast_id": id, "upvotes": upvotes})
	return upvotes, nil
}

// ListTopRanked returns the leaderboard.
func (s *Service) ListTopRanked(ctx context.Context, limit int) ([]Roast, error) {
	return s.Repo.ListTopRanked(ctx, limit)
}

// ListRecent returns roasts newest first.
func (s *Service) ListRecent(ctx context.Context, q ListQuery) ([]Roast, error) {
	return s.Repo.ListRecent(ctx, q)
}

func (s *Service) roast(ctx context.Context, resumeText, memeTag, sourceID string) (Result, error) {
	if s.LLM == nil {
		return Result{}, errors.New("roast generator not configured")
	}
	fields := map[string]any{
		"backend":      s.LLM.Backend(),
		"resume_sha":   util.Fingerprint(resumeText),
		"resume_chars": utf8.RuneCountInString(resumeText),
	}
	if sourceID != "" {
		fields["source_roast_id"] = sourceID
	}

	start := time.Now()
	roastText, err := s.LLM.Generate(ctx, resumeText)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	metrics.ObserveGenerationDurationMs(elapsed)
	fields["duration_ms"] = elapsed
	if err != nil {
		metrics.IncGenerationFailed()
		fields["error"] = err
		fields["code"] = Classify(err).Code
		telemetry.Error("roast.generation_failed", fields)
		return Result{}, err
	}

	memeURL := s.meme(ctx, memeTag)

	roast, err := s.Repo.Create(ctx, resumeText, roastText)
	if err != nil {
		fields["error"] = err
		telemetry.Error("roast.persist_failed", fields)
		return Result{}, fmt.Errorf("persist roast: %w", err)
	}

	metrics.IncRoastCreated()
	fields["roast_id"] = roast.ID
	telemetry.Info("roast.created", fields)
	return Result{Roast: roast, MemeURL: memeURL}, nil
}

func (s *Service) meme(ctx context.Context, tag string) string {
	if s.Memes == nil {
		return ""
	}
	url, ok := s.Memes.Random(ctx, tag)
	if !ok {
		return ""
	}
	return url
}

func (s *Service) reject(stage string, err error) {
	metrics.IncRoastRejected()
	telemetry.Info("roast.rejected", map[string]any{
		"stage": stage,
		"code":  Classify(err).Code,
	})
}
