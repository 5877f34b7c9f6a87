package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/aita/csvfile/config"
	"github.com/aita/csvfile/csvfile"
)

func createCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [file name]",
		Short: "Create or truncate a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			header, _ := cmd.Flags().GetString("header")
			h, err := csvfile.Open(args[0], csvfile.Overwrite, a.options()...)
			if err != nil {
				return err
			}
			if header != "" {
				fields, err := csvfile.Decode(header)
				if err != nil {
					err = errors.Wrap(err, "header")
					return multierr.Append(err, h.Close())
				}
				err = h.SetHeader(fields)
				if err != nil {
					return multierr.Append(err, h.Close())
				}
			}
			return h.Close()
		},
	}
	cmd.Flags().String("header", "", "header line, comma separated with CSV quoting")
	return cmd
}

func insertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "insert [file name] [fields...]",
		Short: "Append a row to a CSV file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := csvfile.New(args[0], a.options()...)
			if err != nil {
				return err
			}
			err = h.WriteRow(args[1:])
			return multierr.Append(err, h.Close())
		},
	}
}

func selectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select [file name]",
		Short: "Print the rows of a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return csvfile.With(args[0], csvfile.Read, func(h *csvfile.Handle) error {
				rows, err := h.ReadAll(a.cfg.IgnoreHeader)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for i, row := range rows {
					fmt.Fprintf(out, "%d: %s", i, csvfile.Encode(row))
				}
				return nil
			}, a.options()...)
		},
	}
	cmd.Flags().Bool("ignore-header", false, "skip the first row")
	a.v.BindPFlag(config.KeyIgnoreHeader, cmd.Flags().Lookup("ignore-header"))
	return cmd
}
