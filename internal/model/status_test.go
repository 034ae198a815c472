package model

import "testing"

func TestTaskStatusIsActive(t *testing.T) {
	activeStatuses := []TaskStatus{
		TaskStatusStarting,
		TaskStatusDownloading,
		TaskStatusProcessing,
		TaskStatusStopping,
	}
	for _, status := range activeStatuses {
		if !status.IsActive() {
			t.Errorf("Status %s should be active", status)
		}
	}

	inactiveStatuses := []TaskStatus{
		TaskStatusPending,
		TaskStatusStopped,
		TaskStatusCompleted,
		TaskStatusError,
	}
	for _, status := range inactiveStatuses {
		if status.IsActive() {
			t.Errorf("Status %s should not be active", status)
		}
	}
}

func TestTaskStatusIsFinished(t *testing.T) {
	finishedStatuses := []TaskStatus{
		TaskStatusCompleted,
		TaskStatusStopped,
		TaskStatusError,
	}
	for _, status := range finishedStatuses {
		if !status.IsFinished() {
			t.Errorf("Status %s should be finished", status)
		}
	}

	unfinishedStatuses := []TaskStatus{
		TaskStatusPending,
		TaskStatusStarting,
		TaskStatusDownloading,
		TaskStatusProcessing,
		TaskStatusStopping,
	}
	for _, status := range unfinishedStatuses {
		if status.IsFinished() {
			t.Errorf("Status %s should not be finished", status)
		}
	}
}

func TestTaskStatusString(t *testing.T) {
	if TaskStatusDownloading.String() != "Downloading" {
		t.Errorf("Expected 'Downloading', got %s", TaskStatusDownloading.String())
	}
}
