package actions

// Result is the JSON object returned to the caller of an action.
// It always carries "success"; the other keys depend on the action.
type Result map[string]any

// Success reports the success flag.
func (r Result) Success() bool {
	ok, _ := r["success"].(bool)
	return ok
}

// Ok builds a successful result with the given key/value pairs.
// kv must alternate string keys and values.
func Ok(kv ...any) Result {
	r := Result{"success": true}
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			r[key] = kv[i+1]
		}
	}
	return r
}

// Fail builds a failed result carrying an error message.
func Fail(msg string) Result {
	return Result{"success": false, "error": msg}
}
