package instance

import "testing"

func TestIDPrefersExplicitValue(t *testing.T) {
	t.Setenv("STATIONDESK_INSTANCE_ID", "api-7")
	if got := ID(); got != "api-7" {
		t.Fatalf("expected api-7 got %q", got)
	}
}

func TestIDFallsBackToHost(t *testing.T) {
	t.Setenv("STATIONDESK_INSTANCE_ID", "")
	if got := ID(); got == "" {
		t.Fatal("expected a non-empty instance id")
	}
}
