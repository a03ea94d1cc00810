package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"lead-capture/pkg/logger"
	"lead-capture/pkg/services"
)

// NewExportCommand creates the export command, which prints every stored lead
func NewExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print all stored leads as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLeadService(cmd, func(svc services.LeadService) error {
				return exportLeads(cmd, svc, cmd.OutOrStdout())
			})
		},
	}
}

// NewEraseCommand creates the erase command, which removes one lead by id or email
func NewEraseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "erase <idOrEmail>",
		Short: "Remove the first lead matching an id or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLeadService(cmd, func(svc services.LeadService) error {
				return eraseLead(cmd, svc, args[0], cmd.OutOrStdout())
			})
		},
	}
}

func withLeadService(cmd *cobra.Command, fn func(services.LeadService) error) error {
	cfg, log, err := loadRuntime(logger.OutputStderr)
	if err != nil {
		return err
	}
	defer log.Close()

	store, closeStore, err := openStore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	return fn(services.NewLeadService(store, services.Options{Logger: log}))
}

func exportLeads(cmd *cobra.Command, svc services.LeadService, out io.Writer) error {
	leads, err := svc.Export(cmd.Context())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(leads)
}

func eraseLead(cmd *cobra.Command, svc services.LeadService, key string, out io.Writer) error {
	removed, err := svc.Erase(cmd.Context(), key)
	if err != nil {
		return fmt.Errorf("erase %q: %w", key, err)
	}

	_, err = fmt.Fprintf(out, "erased lead %s\n", removed.ID)
	return err
}
