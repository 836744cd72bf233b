package derivation

import (
	"fmt"
	"time"

	"github.com/nkhandel/taskpilot-api/internal/domain"
)

// RawDraft is the structured output expected from the language model.
// Timestamps arrive as strings and are validated during normalization.
type RawDraft struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	StartTime   string  `json:"start_time"`
	Deadline    string  `json:"deadline"`
	Status      string  `json:"status"`
}

// Normalize validates a raw model draft and converts it into a TaskDraft.
//
// Rules enforced here, independent of which capability produced the draft:
//   - the title must be present;
//   - start_time, when present, must resolve to an absolute instant;
//   - deadline is mandatory; no synthetic default is invented at this
//     layer (the "+1 hour" fallback belongs to the prompt);
//   - the draft status is recomputed from the normalized timestamps and
//     now; whatever status the model asserted is discarded.
func Normalize(raw *RawDraft, now time.Time) (*TaskDraft, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: draft is nil", ErrInvalidResponse)
	}

	if raw.Title == "" {
		return nil, fmt.Errorf("%w: draft is missing a title", ErrInvalidResponse)
	}

	var startTime *time.Time
	if raw.StartTime != "" && raw.StartTime != "null" {
		parsed, err := domain.ParseInstant(raw.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: unparseable start_time %q", ErrInvalidResponse, raw.StartTime)
		}
		startTime = &parsed
	}

	if raw.Deadline == "" || raw.Deadline == "null" {
		return nil, fmt.Errorf("%w: draft is missing a deadline", ErrInvalidResponse)
	}

	deadline, err := domain.ParseInstant(raw.Deadline)
	if err != nil {
		return nil, fmt.Errorf("%w: unparseable deadline %q", ErrInvalidResponse, raw.Deadline)
	}

	return &TaskDraft{
		Title:       raw.Title,
		Description: raw.Description,
		StartTime:   startTime,
		Deadline:    deadline,
		Status:      domain.ComputeStatus(startTime, deadline, now, ""),
	}, nil
}
