package utils

const (
	UserRegistered      = "user registered, pending admin approval"
	UserLoggedIn        = "user logged in successfully"
	OrgRegistered       = "organization registered successfully"
	SettingsUpdated     = "organization settings updated"
	ServiceCreated      = "service created"
	ServiceUpdated      = "service updated"
	ServiceDeleted      = "service deleted"
	IncidentCreated     = "incident created"
	IncidentUpdated     = "incident updated"
	IncidentDeleted     = "incident deleted"
	MemberUpdated       = "team member updated"
	StatusesRefreshed   = "service statuses refreshed"
	TimelineGenerated   = "incident timeline generated"
	StatusPageRetrieved = "status page retrieved"
)
