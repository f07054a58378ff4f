package http

import (
	"encoding/json"
	"fmt"

	"github.com/storyboard-studio/storyboard-relay/internal/relay/domain"
)

const jsonContentType = "application/json"

// parseVideoScript reads the project text from a relay request. A missing
// videoScript falls back to the default label; a body that is not a JSON
// object, or a videoScript that is not a string, is rejected.
func parseVideoScript(body []byte) (string, error) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	if payload == nil {
		return "", fmt.Errorf("%w: request body must be a JSON object", domain.ErrInvalidRequest)
	}

	v, ok := payload["videoScript"]
	if !ok {
		return domain.DefaultLabel, nil
	}
	script, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: videoScript must be a string", domain.ErrInvalidRequest)
	}
	return script, nil
}
