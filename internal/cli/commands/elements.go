package commands

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AbdulrahmanBUW/LengthCalculator/internal/engine"
	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"
)

// ElementsOptions holds options for the elements command.
type ElementsOptions struct {
	Select string
}

// NewElementsCommand creates the elements command.
func NewElementsCommand() *cobra.Command {
	opts := &ElementsOptions{}

	cmd := &cobra.Command{
		Use:     "elements [source]",
		Aliases: []string{"ls"},
		Short:   "List the elements in a model source",
		Long: `List every element in a model source without calculating lengths.

Useful for checking what a source contains and which names a --select
filter would match.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			return runElements(cmd, arg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Select, "select", "s", "", "Only include elements whose name contains this text")

	return cmd
}

type elementInfo struct {
	Name       string `json:"name"`
	Family     string `json:"family,omitempty"`
	Type       string `json:"type,omitempty"`
	Parameters int    `json:"parameters"`
}

func runElements(cmd *cobra.Command, arg string, opts *ElementsOptions) error {
	cmdCtx := NewCommandContext(cmd)

	src, err := resolveSource(cmdCtx.Cfg, arg)
	if err != nil {
		return err
	}

	model, err := loadModel(cmd.Context(), src, cmdCtx.Logger)
	if err != nil {
		return err
	}

	elements := filterElements(model.Elements, opts.Select)
	infos := make([]elementInfo, 0, len(elements))
	for _, el := range elements {
		info := elementInfo{
			Name:       engine.DisplayName(el),
			Parameters: len(el.Parameters()),
		}
		if family, ok := el.Family(); ok {
			info.Family = family
		}
		if me, ok := el.(*host.ModelElement); ok && me.ElementType != nil {
			info.Type = me.ElementType.Name
		}
		infos = append(infos, info)
	}

	format := resolveFormat(cmdCtx.Cfg, cmd.OutOrStdout())
	if format == "json" {
		payload := struct {
			Project  string        `json:"project,omitempty"`
			Elements []elementInfo `json:"elements"`
		}{Project: model.ProjectName, Elements: infos}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{info.Name, info.Family, info.Type, strconv.Itoa(info.Parameters)})
	}
	return renderGrid(cmd.OutOrStdout(), []string{"Name", "Family", "Type", "Parameters"}, rows, format)
}
