package orchestratornode

import (
	"encoding/json"
	"fmt"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
	"github.com/surrogate-labs/surrogate-agent/agent/extract"
)

// ParseIntent pulls the JSON object out of the raw model text and decodes
// it. The model wraps its output in markdown fences or prose often enough
// that decoding the raw text directly is not viable.
func ParseIntent(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	clean := extract.Object(in.RawResponse)

	var intent contractx.Intent
	if err := json.Unmarshal([]byte(clean), &intent); err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrSchemaViolation, err)
	}

	in.Intent = intent
	in.ReplyText = intent.Response
	return in, nil
}
