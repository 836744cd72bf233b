// Package gemini implements the derivation interface using Google's
// Gemini API.
package gemini

// promptData represents the data passed to the prompt template
type promptData struct {
	// Now is the current UTC instant in RFC 3339 format. The model
	// resolves relative time expressions ("tomorrow at 6 PM", "in two
	// hours") against it.
	Now string

	// Text is the user's free-text task description.
	Text string
}

// defaultPromptTemplate instructs the model to return exactly one JSON
// object matching derivation.RawDraft. The "+1 hour" deadline fallback is
// deliberately a prompt-level policy: the normalization layer rejects
// drafts without a deadline rather than inventing one.
const defaultPromptTemplate = `You are a task-parsing assistant.
Current date and time (UTC): {{.Now}}

The user describes a to-do in plain English. Parse it into exactly one JSON
object (no extra text, no code fences) with these keys:

{
  "title": string,
  "description": string or null,
  "start_time": string,
  "deadline": string
}

Rules:
1. All timestamps must be ISO 8601 UTC instants, e.g. "2025-06-01T12:00:00Z".
2. If the input mentions a specific time ("tomorrow at 6:00 PM", "next
   Monday at 10AM"), convert that exact moment to UTC and use it as
   "start_time". Never leave "start_time" empty when a time is given.
3. If the input contains only a relative phrase like "in one hour", set
   "start_time" to the current time and "deadline" to the current time
   plus that duration.
4. If the input gives explicit start and end times, use both exactly.
5. If no time is mentioned at all, set "start_time" to the current time
   and "deadline" to the current time plus one hour. "deadline" is always
   required.

Be precise and return valid JSON only.

User input: {{.Text}}`
