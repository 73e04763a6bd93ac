package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/JonMunkholm/bizreg/internal/core"
	"github.com/spf13/cobra"
)

func newMigrateCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the business and items tables if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, closeFn, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := backend.EnsureSchema(cmd.Context()); err != nil {
				return fmt.Errorf("migrate: %s", core.FormatUserError(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema ready")
			return nil
		},
	}
}

// openReady opens the backend and creates the schema if it is missing, so
// list and submit work against a fresh database.
func openReady(cmd *cobra.Command, open Opener) (Backend, func(), error) {
	backend, closeFn, err := open(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	if err := backend.EnsureSchema(cmd.Context()); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("prepare schema: %s", core.FormatUserError(err))
	}
	return backend, closeFn, nil
}

func newListCmd(open Opener) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every stored business with its items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, closeFn, err := openReady(cmd, open)
			if err != nil {
				return err
			}
			defer closeFn()

			list, err := core.NewService(backend).ListBusinesses(cmd.Context())
			if err != nil {
				return fmt.Errorf("list: %s", core.FormatUserError(err))
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}
			writeBusinesses(out, list)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func writeBusinesses(w io.Writer, list []core.BusinessWithItems) {
	if len(list) == 0 {
		fmt.Fprintln(w, "no businesses stored")
		return
	}
	for _, b := range list {
		fmt.Fprintf(w, "#%d %s (%s) %s, %s, %s\n",
			b.ID, b.BusinessName, b.BusinessType, b.BusinessMobile, b.Location, b.Timings)
		fmt.Fprintf(w, "    owner: %s %s\n", b.OwnerName, b.OwnerMobile)
		for _, it := range b.Items {
			fmt.Fprintf(w, "    - %s\n", core.ItemLine(it))
		}
	}
}

// errRejected signals a submission that was answered but not stored.
var errRejected = errors.New("submission not stored")

func newSubmitCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <file>",
		Short: "Submit a registration from a JSON file (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			backend, closeFn, err := openReady(cmd, open)
			if err != nil {
				return err
			}
			defer closeFn()

			res := core.NewService(backend).HandleSubmission(cmd.Context(), raw)
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			if !res.Success {
				return errRejected
			}
			return nil
		},
	}
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}
