package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"lead-capture/pkg/models"
	"lead-capture/pkg/services"
	"lead-capture/pkg/storage"
)

func testCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	return cmd
}

func seededService() (services.LeadService, *storage.MemoryStore) {
	store := storage.NewMemoryStore(
		models.Lead{ID: "1", Email: "a@example.com", Consent: true},
		models.Lead{ID: "2", Email: "b@example.com", Consent: true},
	)
	return services.NewLeadService(store, services.Options{}), store
}

func TestExportLeads_WritesJSONArray(t *testing.T) {
	svc, _ := seededService()
	var out bytes.Buffer

	if err := exportLeads(testCommand(), svc, &out); err != nil {
		t.Fatalf("exportLeads: %v", err)
	}

	var leads []models.Lead
	if err := json.Unmarshal(out.Bytes(), &leads); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(leads) != 2 || leads[0].ID != "1" || leads[1].ID != "2" {
		t.Fatalf("unexpected export %+v", leads)
	}
}

func TestEraseLead(t *testing.T) {
	svc, store := seededService()
	var out bytes.Buffer

	if err := eraseLead(testCommand(), svc, "B@example.com", &out); err != nil {
		t.Fatalf("eraseLead: %v", err)
	}
	if !strings.Contains(out.String(), "erased lead 2") {
		t.Fatalf("unexpected output %q", out.String())
	}
	leads, _ := store.ReadAll(context.Background())
	if len(leads) != 1 || leads[0].ID != "1" {
		t.Fatalf("unexpected leads after erase %+v", leads)
	}

	err := eraseLead(testCommand(), svc, "missing", &out)
	if !errors.Is(err, services.ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()
	for _, name := range []string{"serve", "export", "erase"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("expected %s subcommand, got %v (%v)", name, cmd, err)
		}
	}
}
