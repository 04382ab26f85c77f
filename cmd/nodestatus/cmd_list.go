package main

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/alice39s/aqua-speed-status/internal/config"
	"github.com/alice39s/aqua-speed-status/internal/nodes"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all nodes in the node list file",
	RunE:  runListCmd,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagNodes != "" {
		cfg.NodesFile = flagNodes
	}

	list, err := nodes.Load(cfg.NodesFile)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetAutoIndex(true)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "ISP", "Type", "ID"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Name", Colors: text.Colors{text.FgHiBlue}, Align: text.AlignLeft, WidthMax: 50},
		{Name: "ISP", Colors: text.Colors{text.FgHiYellow}, Align: text.AlignLeft, WidthMax: 50},
		{Name: "Type", Colors: text.Colors{text.FgHiCyan}, Align: text.AlignLeft},
		{Name: "ID", Colors: text.Colors{text.FgHiMagenta}, Align: text.AlignLeft},
	})
	t.SortBy([]table.SortBy{
		{Name: "Type", Mode: table.Asc},
		{Name: "ISP", Mode: table.Asc},
	})

	for _, n := range list {
		t.AppendRow(table.Row{
			n.Name.Display(),
			n.Isp.Display(),
			strings.ToUpper(n.Type),
			n.ID,
		})
	}
	if len(list) > 25 {
		t.SetPageSize(25)
	}

	t.Render()
	return nil
}
