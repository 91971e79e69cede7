package framework

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/macropilot/server/pkg/bootstrap"
	"github.com/macropilot/server/pkg/testing/mocks"
	"github.com/macropilot/server/pkg/types"
)

func TestWrapCloudEvent(t *testing.T) {
	var statuses []string
	mockDB := &mocks.MockDatabase{
		SetExecutionFunc: func(ctx context.Context, record *types.ExecutionRecord) error {
			statuses = append(statuses, record.Status)
			if record.ServiceName != "test-service" {
				t.Errorf("Expected service name test-service, got %s", record.ServiceName)
			}
			return nil
		},
		UpdateExecutionFunc: func(ctx context.Context, id string, data map[string]interface{}) error {
			if s, ok := data["status"].(string); ok {
				statuses = append(statuses, s)
			}
			return nil
		},
	}

	svc := &bootstrap.Service{DB: mockDB}

	handler := func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error) {
		if fwCtx.Service != svc {
			t.Error("Service not injected correctly")
		}
		if fwCtx.ExecutionID == "" {
			t.Error("ExecutionID not generated")
		}
		return "ok", nil
	}

	wrapped := WrapCloudEvent("test-service", svc, handler)

	e := event.New()
	e.SetType("google.cloud.pubsub.topic.v1.messagePublished")
	e.SetSource("test-source")

	if err := wrapped(context.Background(), e); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}

	expected := []string{types.StatusStarted, types.StatusSuccess}
	if len(statuses) != len(expected) {
		t.Fatalf("Expected statuses %v, got %v", expected, statuses)
	}
	for i := range expected {
		if statuses[i] != expected[i] {
			t.Errorf("Expected status %s at step %d, got %s", expected[i], i, statuses[i])
		}
	}
}

func TestWrapCloudEvent_Failure(t *testing.T) {
	var finalStatus string
	mockDB := &mocks.MockDatabase{
		UpdateExecutionFunc: func(ctx context.Context, id string, data map[string]interface{}) error {
			if s, ok := data["status"].(string); ok {
				finalStatus = s
			}
			if _, ok := data["error"]; !ok {
				t.Error("Expected error message in failure update")
			}
			return nil
		},
	}

	svc := &bootstrap.Service{DB: mockDB}

	handler := func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error) {
		return nil, errors.New("simulated error")
	}

	wrapped := WrapCloudEvent("test-service", svc, handler)

	e := event.New()
	if err := wrapped(context.Background(), e); err == nil {
		t.Fatal("Expected error, got nil")
	}

	if finalStatus != types.StatusFailure {
		t.Errorf("Expected final status %s, got %s", types.StatusFailure, finalStatus)
	}
}

func TestWrapCloudEvent_CustomStatus(t *testing.T) {
	var finalStatus string
	mockDB := &mocks.MockDatabase{
		UpdateExecutionFunc: func(ctx context.Context, id string, data map[string]interface{}) error {
			if s, ok := data["status"].(string); ok {
				finalStatus = s
			}
			return nil
		},
	}

	svc := &bootstrap.Service{DB: mockDB}

	handler := func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error) {
		return map[string]interface{}{"status": "skipped", "reason": "no goals set"}, nil
	}

	wrapped := WrapCloudEvent("test-service", svc, handler)

	e := event.New()
	if err := wrapped(context.Background(), e); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}

	if finalStatus != types.StatusSkipped {
		t.Errorf("Expected final status %s, got %s", types.StatusSkipped, finalStatus)
	}
}

func TestExtractEventMetadata(t *testing.T) {
	inner := []byte(`{"user_id":"user-42","date":"2026-05-01"}`)

	psMsg := types.PubSubMessage{}
	psMsg.Message.Data = inner
	psMsg.Message.Attributes = map[string]string{"test_run_id": "run-7"}

	e := event.New()
	e.SetType("google.cloud.pubsub.topic.v1.messagePublished")
	e.SetSource("//pubsub")
	e.SetData(event.ApplicationJSON, psMsg)

	userID, testRunID := extractEventMetadata(e)
	if userID != "user-42" {
		t.Errorf("Expected user-42, got %q", userID)
	}
	if testRunID != "run-7" {
		t.Errorf("Expected run-7, got %q", testRunID)
	}
}
