package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/TonyStark-47/Job-Application-Tracker/internal/models"
)

// generator is the external text-generation collaborator.
type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// The reply contract: one JSON object with exactly these keys.
var requiredFields = []string{"job_title", "company", "status", "location", "date", "link"}

// First substring delimited by the outermost matching braces, greedy across
// newlines, so a JSON object survives even when the model wraps it in prose.
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

const extractionPrompt = `You are an intelligent job data extractor.

I will provide you with raw extracted text from a job portal. Your task is to parse the text and extract job-related information.
Your response must be in **pure JSON format** with the following keys:

- "job_title" (str): Title of the job role
- "company" (str): Name of the company
- "status" (str): Application status. Choose from the following:
- "Applied", "Interviewed", "Rejected", "Offered", "Awaiting Interview"
- If no exact match, return a best-guess such as "Hiring Challenge"
- "location" (str): Use short, city-level names (1-2 words only)
- "date" (str): Date of apply/test/interview in YYYY-MM-DD format
- If no date is found in the text, use today's date: "%s"
- "link" (str): Link to the job posting
- If not found, use a placeholder like "https://sample-job-link.com"

Additional Instructions:
- Do **not** include any keys with null, None, or empty values.
- If multiple jobs are present in the text, return only the one(s) I have applied for.
- Output must be in **valid JSON** and nothing else - no explanations, no extra text.

Here is the extracted data:
%s`

// ExtractService turns unstructured scraped text into a stored job record:
// build a constrained prompt, ask the model, isolate and validate the JSON
// object in its reply, commit under the calling owner.
type ExtractService struct {
	llm    generator
	jobs   jobStore
	logger *slog.Logger

	// Injectable for tests; drives the fallback date in the prompt.
	now func() time.Time
}

func NewExtractService(llm generator, jobs jobStore, logger *slog.Logger) *ExtractService {
	return &ExtractService{llm: llm, jobs: jobs, logger: logger, now: time.Now}
}

// Extract runs the pipeline for the given owner. On success it returns the
// committed record and the parsed object (echoed back to the caller for
// diagnostics). A parsing or field-mapping failure aborts without creating a
// record and surfaces as ErrNoJSONFound, ErrMalformedJSON or
// *MissingFieldError.
func (s *ExtractService) Extract(ctx context.Context, ownerID uint, text string) (*models.JobApplication, map[string]any, error) {
	if len(text) > maxPromptInput {
		text = text[:maxPromptInput]
	}

	today := s.now().Format("2006-01-02")
	prompt := fmt.Sprintf(extractionPrompt, today, text)

	reply, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, nil, fmt.Errorf("generation service: %w", err)
	}

	raw := jsonObjectPattern.FindString(reply)
	if raw == "" {
		s.logger.Warn("extraction reply had no json object", "reply_len", len(reply))
		return nil, nil, ErrNoJSONFound
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		s.logger.Warn("extraction reply had invalid json", "error", err)
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	values := make(map[string]string, len(requiredFields))
	for _, field := range requiredFields {
		v, ok := fields[field].(string)
		if !ok || v == "" {
			return nil, nil, &MissingFieldError{Field: field}
		}
		values[field] = v
	}

	job := &models.JobApplication{
		UserID:   ownerID,
		JobTitle: values["job_title"],
		Company:  values["company"],
		Status:   values["status"],
		Location: values["location"],
		Date:     values["date"],
		Link:     values["link"],
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, nil, err
	}

	s.logger.Info("extracted job record", "user_id", ownerID, "company", job.Company, "job_title", job.JobTitle)
	return job, fields, nil
}
