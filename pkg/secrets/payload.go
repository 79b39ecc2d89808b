package secrets

import (
	"encoding/json"
	"fmt"
)

// decodePayload turns a secret body into key/value pairs. A JSON object is
// flattened one level; anything else is stored under "value".
func decodePayload(data []byte) map[string]string {
	payload := make(map[string]string)

	var asMap map[string]interface{}
	if err := json.Unmarshal(data, &asMap); err == nil {
		for k, v := range asMap {
			if v == nil {
				continue
			}
			if s, ok := v.(string); ok {
				payload[k] = s
				continue
			}
			payload[k] = fmt.Sprint(v)
		}
		return payload
	}

	payload["value"] = string(data)
	return payload
}
