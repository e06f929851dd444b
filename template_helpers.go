package maestro

// TemplateUserKey is the view-context key under which the current user is
// exposed to templates.
var TemplateUserKey = "current_user"

// TemplateHelpers returns session-backed helper data for view rendering.
// The values reflect the session at call time; call it per request rather
// than once at startup.
//
// In templates:
//
//	{% if is_authenticated %}
//	{{ current_user.FullName }}
//	{{ session_status }}
func TemplateHelpers(session SessionWatcher) map[string]any {
	helpers := map[string]any{
		"is_authenticated": false,
		"session_status":   string(SessionUnresolved),
		TemplateUserKey:    nil,
	}
	if session == nil {
		return helpers
	}

	helpers["is_authenticated"] = session.IsAuthenticated()
	helpers["session_status"] = string(session.Status())

	if user := session.Identity(); user != nil {
		helpers[TemplateUserKey] = user
	}

	return helpers
}

// MergeTemplateHelpers layers session helpers under the handler's own view
// data; on key collision the handler's value wins.
func MergeTemplateHelpers(session SessionWatcher, data map[string]any) map[string]any {
	merged := TemplateHelpers(session)
	for key, value := range data {
		merged[key] = value
	}
	return merged
}

// DisplayName returns the friendliest non-empty name for a user, falling back
// through full name, username, and email.
func DisplayName(user *User) string {
	if user == nil {
		return ""
	}
	if user.FullName != "" {
		return user.FullName
	}
	if user.Username != "" {
		return user.Username
	}
	return user.Email
}
