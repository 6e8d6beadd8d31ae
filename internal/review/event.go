package review

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/MaanyaBS/ai-code-review-bot/internal/types"
)

// Event is the slice of a pull_request webhook payload the commentary
// tool needs.
type Event struct {
	Owner  string
	Repo   string
	Number int
	Title  string
	Body   string
}

// redactedPaths are payload subtrees that carry no review signal and
// may contain identifying or sensitive detail. Stripped before the
// payload is logged or embedded anywhere.
var redactedPaths = []string{
	"pull_request.user.avatar_url",
	"pull_request.user.gravatar_id",
	"pull_request.head.repo.owner",
	"pull_request.base.repo.owner",
	"pull_request._links",
	"repository.owner",
	"sender",
	"installation",
}

// LoadEvent reads and parses the webhook event payload file written by
// the CI runner.
func LoadEvent(path string) (Event, error) {
	if path == "" {
		return Event{}, types.NewValidationError("event payload path not set")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Event{}, fmt.Errorf("read event payload: %w", err)
	}
	return ParseEvent(string(data))
}

// ParseEvent extracts the PR coordinates from a raw event payload.
func ParseEvent(payload string) (Event, error) {
	if !gjson.Valid(payload) {
		return Event{}, types.NewValidationError("event payload is not valid JSON")
	}

	payload = RedactPayload(payload)

	number := gjson.Get(payload, "pull_request.number").Int()
	if number == 0 {
		return Event{}, types.NewValidationError("event payload has no pull request number")
	}

	fullName := gjson.Get(payload, "repository.full_name").String()
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok {
		return Event{}, types.NewValidationError("event payload has no repository full_name")
	}

	return Event{
		Owner:  owner,
		Repo:   repo,
		Number: int(number),
		Title:  gjson.Get(payload, "pull_request.title").String(),
		Body:   gjson.Get(payload, "pull_request.body").String(),
	}, nil
}

// RedactPayload strips noisy subtrees from the raw payload. Deleting a
// path that is absent is a no-op, so the list can stay generous.
func RedactPayload(payload string) string {
	for _, path := range redactedPaths {
		payload, _ = sjson.Delete(payload, path)
	}
	return payload
}
