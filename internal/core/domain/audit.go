package domain

import "time"

// AuditAction identifies what kind of action an audit record captures.
type AuditAction string

const (
	AuditActionCreate        AuditAction = "CREATE"
	AuditActionUpdate        AuditAction = "UPDATE"
	AuditActionDelete        AuditAction = "DELETE"
	AuditActionLogin         AuditAction = "LOGIN"
	AuditActionLogout        AuditAction = "LOGOUT"
	AuditActionRegister      AuditAction = "REGISTER"
	AuditActionPasswordReset AuditAction = "PASSWORD_RESET"
	AuditActionAccessDenied  AuditAction = "ACCESS_DENIED"
	AuditActionSystem        AuditAction = "SYSTEM_ACTION"
)

// AuditChanges holds the sanitized full before/after state of a mutated
// resource. For updates, ChangedFields lists the top-level and one-level
// nested field paths that differ; the snapshots themselves are stored whole,
// not as a minimal patch.
type AuditChanges struct {
	Before        map[string]any `json:"before,omitempty"`
	After         map[string]any `json:"after,omitempty"`
	ChangedFields []string       `json:"changed_fields,omitempty"`
}

// AuditRecord is an immutable entry in the append-only audit trail: who did
// what to which resource, from where, and when. Records are never mutated or
// deleted once written.
type AuditRecord struct {
	ID            string        `json:"id"`
	ActorID       string        `json:"actor_id"`
	Action        AuditAction   `json:"action"`
	ResourceType  string        `json:"resource_type"`
	ResourceID    string        `json:"resource_id,omitempty"`
	Changes       *AuditChanges `json:"changes,omitempty"`
	ClientAddress string        `json:"client_address,omitempty"`
	ClientAgent   string        `json:"client_agent,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
	Details       string        `json:"details,omitempty"`
}

// RequestMeta carries the client network metadata recorded on every audit entry.
type RequestMeta struct {
	ClientAddress string
	ClientAgent   string
}
