// Package envelope defines the JSON result envelope every tool returns and
// the error taxonomy surfaced inside it. Errors are values: nothing below the
// tool boundary raises, and a failure envelope means the world state was not
// touched.
package envelope

import "encoding/json"

// HaltPrefix marks failure prose the agent must not retry: authorization
// denials, missing consent, and other dead ends.
const HaltPrefix = "Halt: "

// Success serializes a success envelope. The fields map carries the
// domain-chosen payload (entity id, post-image, message); success:true is
// injected.
func Success(fields map[string]any) string {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["success"] = true
	return marshal(out)
}

// Failure serializes a failure envelope from an error. *Error values carry
// their halt flag into the prose; any other error is passed through as-is.
func Failure(err error) string {
	msg := err.Error()
	if e, ok := err.(*Error); ok && e.Halt {
		msg = HaltPrefix + e.Msg
	}
	return marshal(map[string]any{"success": false, "error": msg})
}

// FailureMsg serializes a failure envelope from plain prose, preserving any
// Halt prefix already present. Composite tools use it to pass a sub-result's
// error through unchanged.
func FailureMsg(msg string) string {
	return marshal(map[string]any{"success": false, "error": msg})
}

func marshal(v map[string]any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Envelope payloads are built from JSON-decoded values; this is
		// unreachable for well-formed tools but must not panic across the
		// boundary.
		return `{"success":false,"error":"internal: result not serializable"}`
	}
	return string(data)
}
