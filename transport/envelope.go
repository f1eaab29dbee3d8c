package transport

import (
	"encoding/json"
	"time"

	"tgbotkit"
)

// envelope is the uniform response shape every Bot API method returns:
// { "ok": true, "result": T } on success, or
// { "ok": false, "description": ..., "error_code": ..., "parameters": {...} }
// on failure.
type envelope struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Parameters  *responseParams `json:"parameters,omitempty"`
}

type responseParams struct {
	RetryAfter        *int   `json:"retry_after,omitempty"`
	MigrateToChatID   *int64 `json:"migrate_to_chat_id,omitempty"`
}

// decodeEnvelope maps an HTTP status + body into (result bytes, error),
// following spec.md §4.1's error-mapping table:
//   - non-2xx with a parseable body -> Api / RetryAfter / MigrateToChat
//     depending on Parameters, Parameters taking precedence over the
//     generic Api error;
//   - non-2xx without a parseable body -> Network;
//   - 2xx with a body that fails to parse -> Decode.
func decodeEnvelope(status int, body []byte) (json.RawMessage, error) {
	var env envelope
	parseErr := json.Unmarshal(body, &env)

	is2xx := status >= 200 && status < 300

	if parseErr != nil {
		if is2xx {
			return nil, &tgbotkit.Error{Kind: tgbotkit.KindDecode, Err: parseErr}
		}
		return nil, &tgbotkit.Error{Kind: tgbotkit.KindNetwork, Err: parseErr}
	}

	if env.OK {
		return env.Result, nil
	}

	if env.Parameters != nil {
		if env.Parameters.RetryAfter != nil {
			return nil, &tgbotkit.Error{
				Kind:        tgbotkit.KindRetryAfter,
				Description: env.Description,
				Code:        env.ErrorCode,
				RetryAfter:  time.Duration(*env.Parameters.RetryAfter) * time.Second,
			}
		}
		if env.Parameters.MigrateToChatID != nil {
			return nil, &tgbotkit.Error{
				Kind:            tgbotkit.KindMigrateToChat,
				Description:     env.Description,
				Code:            env.ErrorCode,
				MigrateToChatID: *env.Parameters.MigrateToChatID,
			}
		}
	}

	return nil, &tgbotkit.Error{Kind: tgbotkit.KindAPI, Description: env.Description, Code: env.ErrorCode}
}
