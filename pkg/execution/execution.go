// Package execution records one document per function invocation so runs can
// be traced and replayed from Firestore.
package execution

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	shared "github.com/macropilot/server/pkg"
	"github.com/macropilot/server/pkg/types"
)

// ExecutionOptions carries optional metadata attached at start time.
type ExecutionOptions struct {
	UserID      string
	TestRunID   string
	TriggerType string
}

// LogStart writes a STARTED record and returns its execution ID.
func LogStart(ctx context.Context, db shared.Database, serviceName string, opts ExecutionOptions) (string, error) {
	execID := uuid.NewString()
	record := &types.ExecutionRecord{
		ExecutionId: execID,
		ServiceName: serviceName,
		UserId:      opts.UserID,
		TestRunID:   opts.TestRunID,
		TriggerType: opts.TriggerType,
		Status:      types.StatusStarted,
		StartedAt:   time.Now().UTC(),
	}
	if err := db.SetExecution(ctx, record); err != nil {
		return execID, err
	}
	return execID, nil
}

// LogSuccess marks the execution SUCCESS and attaches the handler outputs.
func LogSuccess(ctx context.Context, db shared.Database, execID string, outputs interface{}) error {
	return logFinish(ctx, db, execID, types.StatusSuccess, "", outputs)
}

// LogSkipped marks the execution SKIPPED, for runs that decided there was
// nothing to do (no goals set, insufficient data).
func LogSkipped(ctx context.Context, db shared.Database, execID string, outputs interface{}) error {
	return logFinish(ctx, db, execID, types.StatusSkipped, "", outputs)
}

// LogFailure marks the execution FAILURE with the error message.
func LogFailure(ctx context.Context, db shared.Database, execID string, handlerErr error, outputs interface{}) error {
	msg := ""
	if handlerErr != nil {
		msg = handlerErr.Error()
	}
	return logFinish(ctx, db, execID, types.StatusFailure, msg, outputs)
}

// LogExecutionStatus marks the execution with an explicit status string.
// Unknown statuses are stored as-is rather than rejected.
func LogExecutionStatus(ctx context.Context, db shared.Database, execID string, status string, outputs interface{}) error {
	return logFinish(ctx, db, execID, status, "", outputs)
}

func logFinish(ctx context.Context, db shared.Database, execID, status, errMsg string, outputs interface{}) error {
	updates := map[string]interface{}{
		"status":      status,
		"finished_at": time.Now().UTC(),
	}
	if errMsg != "" {
		updates["error"] = errMsg
	}
	if outputs != nil {
		// Outputs are stored as a JSON string so arbitrary handler shapes
		// never fight Firestore's nested-field typing.
		if data, err := json.Marshal(outputs); err == nil {
			updates["outputs"] = string(data)
		}
	}
	return db.UpdateExecution(ctx, execID, updates)
}
