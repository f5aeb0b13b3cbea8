package output

import (
	"encoding/base64"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// NormalizeJSONValue converts a CBOR-decoded value into something the
// encoding/json package can handle: tag payloads are unwrapped into
// {"tag": n, "value": ...} and raw byte strings become base64.
func NormalizeJSONValue(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, entry := range v {
			out[fmt.Sprintf("%v", key)] = NormalizeJSONValue(entry)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, entry := range v {
			out[key] = NormalizeJSONValue(entry)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, entry := range v {
			out[i] = NormalizeJSONValue(entry)
		}
		return out
	case cbor.Tag:
		return map[string]any{
			"tag":   v.Number,
			"value": NormalizeJSONValue(v.Content),
		}
	case []byte:
		return map[string]any{
			"bytes":  len(v),
			"base64": base64.StdEncoding.EncodeToString(v),
		}
	default:
		return v
	}
}
