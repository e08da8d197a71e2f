package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	wellbore "github.com/turtacn/WellNodal/internal/domain/wellbore"
	wbtypes "github.com/turtacn/WellNodal/pkg/types/wellbore"
)

// designFile is the on-disk design document accepted by `geometry merge`.  It
// matches the design API's JSON shape, so a dashboard export can be fed in
// directly.
type designFile struct {
	BHARows    []wbtypes.ComponentRowDTO `json:"bha_rows"`
	CasingRows []wbtypes.ComponentRowDTO `json:"casing_rows"`
	NodalPoint float64                   `json:"nodal_point"`
}

type geometryOptions struct {
	file       string
	nodalPoint float64
	output     string
}

func newGeometryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geometry",
		Short: "Wellbore geometry tools",
	}
	cmd.AddCommand(newGeometryMergeCommand())
	return cmd
}

func newGeometryMergeCommand() *cobra.Command {
	opts := &geometryOptions{}

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge a design file into the nodal-anchored segment stack",
		Long: "Reads a wellbore design JSON file (BHA rows, casing rows, nodal point),\n" +
			"merges the overlapping component lists into ordered non-overlapping segments\n" +
			"carrying the governing internal diameter, and prints the result.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGeometryMerge(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.file, "file", "f", "", "design JSON file (required)")
	f.Float64Var(&opts.nodalPoint, "nodal-point", 0, "override the file's nodal point depth")
	f.StringVarP(&opts.output, "output", "o", "table", "output format (table, json)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runGeometryMerge(cmd *cobra.Command, opts *geometryOptions) error {
	raw, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("read design file: %w", err)
	}
	var design designFile
	if err := json.Unmarshal(raw, &design); err != nil {
		return fmt.Errorf("parse design file: %w", err)
	}

	nodal := design.NodalPoint
	if cmd.Flags().Changed("nodal-point") {
		nodal = opts.nodalPoint
	}

	bha := make([]wellbore.ComponentRow, 0, len(design.BHARows))
	for _, r := range design.BHARows {
		r.Kind = wbtypes.RowKindBHA
		bha = append(bha, wellbore.RowFromDTO(r))
	}
	casing := make([]wellbore.ComponentRow, 0, len(design.CasingRows))
	for _, r := range design.CasingRows {
		r.Kind = wbtypes.RowKindCasing
		casing = append(casing, wellbore.RowFromDTO(r))
	}

	segments, diags := wellbore.MergeWithReport(bha, casing, nodal)

	for _, d := range diags {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: row %q (%s): %s\n", d.RowID, d.Kind, d.Reason)
	}

	switch opts.output {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"nodal_point": nodal,
			"segments":    wellbore.SegmentsToDTO(segments),
		})
	case "table":
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "START\tEND\tDIAMETER")
		for _, s := range segments {
			fmt.Fprintf(w, "%.2f\t%.2f\t%.4f\n", s.StartDepth, s.EndDepth, s.Diameter)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if len(segments) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "(no usable geometry)")
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected table or json)", opts.output)
	}
}
