package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/taskmaster/questionbank/internal/domain/entities"
	"github.com/taskmaster/questionbank/internal/infrastructure/datafile"
	"github.com/taskmaster/questionbank/internal/ports"
)

// NewRecordsCommand creates the records command with subcommands
func NewRecordsCommand() *cobra.Command {
	recordsCmd := &cobra.Command{
		Use:   "records",
		Short: "Record management commands",
		Long:  "List, add, delete, edit, filter, sort and export records in the question file",
	}

	recordsCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create an empty question file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			created, err := datafile.New(cfg.Store).Initialize()
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", cfg.Store.Path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", cfg.Store.Path)
			}
			return nil
		},
	})

	recordsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every record as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			records, err := sess.service.ListRecords(cmd.Context())
			if err != nil {
				return err
			}
			return writeRecords(cmd.OutOrStdout(), "json", records)
		},
	})

	recordsCmd.AddCommand(&cobra.Command{
		Use:     "add <entry>",
		Short:   "Append a record",
		Example: `  questionbank records add "What is 781 + 820?|1601|0540, 6172, 999, -835"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			record, err := sess.service.CreateRecord(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q\n", record.Question)
			return nil
		},
	})

	recordsCmd.AddCommand(&cobra.Command{
		Use:     "delete <question>",
		Short:   "Delete every record with a question",
		Example: `  questionbank records delete "781 + 820?"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			removed, err := sess.service.DeleteRecord(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d record(s)\n", removed)
			return nil
		},
	})

	recordsCmd.AddCommand(&cobra.Command{
		Use:     "edit <question> <entry>",
		Short:   "Replace every record with a question",
		Example: `  questionbank records edit "781 + 820?" "What is 781 + 820?|1601|0540, 6172, 999"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			edited, err := sess.service.EditRecord(cmd.Context(), ports.EditRecordRequest{Question: args[0], NewQ: args[1]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Edited %d record(s)\n", edited)
			return nil
		},
	})

	filterCmd := &cobra.Command{
		Use:     "filter",
		Short:   "Print the records matching a comparison",
		Example: `  questionbank records filter --operation GT --attribute answer --value 4112`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := ports.FilterRecordsRequest{}
			req.Operation, _ = cmd.Flags().GetString("operation")
			req.Attribute, _ = cmd.Flags().GetString("attribute")
			req.Value, _ = cmd.Flags().GetString("value")

			sess, err := openSession(cmd, nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			records, err := sess.service.FilterRecords(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeRecords(cmd.OutOrStdout(), "json", records)
		},
	}
	filterCmd.Flags().String("operation", string(entities.OperationFind), "FIND, GT or LT")
	filterCmd.Flags().String("attribute", string(entities.AttributeAnswer), "question, answer or distractors")
	filterCmd.Flags().String("value", "", "Value to compare against")
	recordsCmd.AddCommand(filterCmd)

	sortCmd := &cobra.Command{
		Use:     "sort",
		Short:   "Reorder the question file",
		Example: `  questionbank records sort --operation LT --attribute answer`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := ports.SortRecordsRequest{}
			req.Operation, _ = cmd.Flags().GetString("operation")
			req.Attribute, _ = cmd.Flags().GetString("attribute")

			sess, err := openSession(cmd, nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.service.SortRecords(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sorted %d record(s)\n", sess.service.Count())
			return nil
		},
	}
	sortCmd.Flags().String("operation", string(entities.OperationLess), "LT (ascending) or GT (descending)")
	sortCmd.Flags().String("attribute", string(entities.AttributeAnswer), "question, answer or distractors")
	recordsCmd.AddCommand(sortCmd)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write every record as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			sess, err := openSession(cmd, nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			records, err := sess.service.ListRecords(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create export file: %w", err)
				}
				defer f.Close()
				w = f
			}
			return writeRecords(w, format, records)
		},
	}
	exportCmd.Flags().String("format", "json", "json or yaml")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	recordsCmd.AddCommand(exportCmd)

	return recordsCmd
}

// writeRecords encodes records in the requested format
func writeRecords(w io.Writer, format string, records []entities.Record) error {
	if records == nil {
		records = []entities.Record{}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	default:
		return &entities.UnsupportedOperationError{Kind: "export format", Value: format}
	}
}
