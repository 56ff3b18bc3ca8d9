package unionwire

import "github.com/reoring/unionwire/i18n"

// IssueAt creates a single-issue error at path. data feeds both the translated
// message and Params; hint and cause are optional.
func IssueAt(path, code, hint string, cause error, data map[string]string) Issues {
	var params map[string]any
	if len(data) > 0 {
		params = make(map[string]any, len(data))
		for k, v := range data {
			params[k] = v
		}
	}
	return Issues{{Path: path, Code: code, Message: i18n.T(code, data), Hint: hint, Cause: cause, Params: params}}
}
