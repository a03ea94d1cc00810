package metrics

import "testing"

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.LeadEvent("accepted")
	m.ObserveRequest("GET", "/health", "200", 0.01)
}

func leadEventCount(t *testing.T, m *Metrics, event string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "leads_events_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "event" && label.GetValue() == event {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestLeadEvent(t *testing.T) {
	m := New()
	m.LeadEvent("accepted")
	m.LeadEvent("accepted")
	m.LeadEvent("rejected")

	if got := leadEventCount(t, m, "accepted"); got != 2 {
		t.Fatalf("expected 2 accepted, got %v", got)
	}
	if got := leadEventCount(t, m, "rejected"); got != 1 {
		t.Fatalf("expected 1 rejected, got %v", got)
	}
	if got := leadEventCount(t, m, "erased"); got != 0 {
		t.Fatalf("expected no erased events, got %v", got)
	}
}
