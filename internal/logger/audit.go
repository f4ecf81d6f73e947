package logger

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// AuditAction is one data mutation written to the audit log
type AuditAction struct {
	Action     string                 `json:"action"`      // save, delete, import, checkout, ...
	Kind       string                 `json:"kind"`        // Collection type
	ResourceID string                 `json:"resource_id"` // Affected document, when there is a single one
	Details    map[string]interface{} `json:"details"`
	Timestamp  time.Time              `json:"timestamp"`
}

// LogAction writes an audit entry
func LogAction(ctx context.Context, action, kind, resourceID string, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	audit := AuditAction{
		Action:     action,
		Kind:       kind,
		ResourceID: resourceID,
		Details:    details,
		Timestamp:  time.Now(),
	}

	fields := logrus.Fields{
		"action":      audit.Action,
		FieldKind:     audit.Kind,
		"resource_id": audit.ResourceID,
		"details":     audit.Details,
		"timestamp":   audit.Timestamp,
	}
	if session, ok := ctx.Value(SessionKey).(string); ok && session != "" {
		fields[FieldSession] = session
	}
	GetAuditLogger().WithFields(fields).Info("Audit log")
}

// LogCRUD writes an audit entry for a single document operation
func LogCRUD(ctx context.Context, operation, kind, resourceID string, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["operation"] = operation
	LogAction(ctx, "crud_"+operation, kind, resourceID, details)
}

// ReportError logs an error meant for the user on both the app and error loggers
func ReportError(ctx context.Context, component string, err error, msg string) {
	if err == nil {
		return
	}
	Component(ctx, component).WithError(err).Error(msg)
	GetErrorLogger().WithField(FieldComponent, component).WithError(err).Error(msg)
}
