package models

import "testing"

func TestIsValidMaintenanceStatus(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{MaintenanceStatusOpen, true},
		{MaintenanceStatusInProgress, true},
		{MaintenanceStatusDone, true},
		{"closed", false},
		{"", false},
		{"OPEN", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := IsValidMaintenanceStatus(tt.status); got != tt.expected {
				t.Errorf("IsValidMaintenanceStatus(%q) = %v, want %v", tt.status, got, tt.expected)
			}
		})
	}
}
