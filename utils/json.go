package utils

import (
	json "github.com/bytedance/sonic"
)

// JsonString marshals obj for log output; errors collapse to "".
func JsonString(obj any) string {
	jsonStr, _ := json.Marshal(obj)
	return string(jsonStr)
}

// JsonIndent is JsonString with two-space indentation.
func JsonIndent(obj any) string {
	jsonStr, _ := json.MarshalIndent(obj, "", "  ")
	return string(jsonStr)
}
