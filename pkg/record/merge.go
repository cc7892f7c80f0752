// Package record implements the read-merge-write update semantics used
// for every stored entity: a shallow field overwrite onto the stored
// JSON value, rewriting the whole record.
package record

import "encoding/json"

// Merge applies patch fields over the stored JSON object and stamps
// updatedAt. Fields absent from the patch keep their stored values,
// including fields no struct in this codebase knows about.
func Merge(stored []byte, patch map[string]any, updatedAt string) ([]byte, error) {
	merged := map[string]any{}
	if err := json.Unmarshal(stored, &merged); err != nil {
		return nil, err
	}
	for key, value := range patch {
		merged[key] = value
	}
	merged["updatedAt"] = updatedAt
	return json.Marshal(merged)
}
