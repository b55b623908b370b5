package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"price-recon-service/internal/compare/loader"
	"price-recon-service/internal/compare/model"
	"price-recon-service/internal/compare/service"
	"price-recon-service/internal/fileio"
)

var compareFlags struct {
	inventory string
	headerRow int
	out       string
	threshold float64
}

func init() {
	f := compareCmd.Flags()
	f.StringVarP(&compareFlags.inventory, "inventory", "i", "", "inventory file (csv, xls, xlsx)")
	f.IntVar(&compareFlags.headerRow, "header-row", 1, "inventory header row, 0 for the positional layout")
	f.StringVarP(&compareFlags.out, "out", "o", "", "write the comparison workbook to this xlsx file")
	f.Float64Var(&compareFlags.threshold, "threshold", -1, "suggestion threshold for unmatched models (default from config)")
	_ = compareCmd.MarkFlagRequired("inventory")
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare --inventory <file> <competitor files...>",
	Short: "Builds the price comparison from an inventory file and competitor exports.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := loadInventory(compareFlags.inventory, compareFlags.headerRow)
		if err != nil {
			return fmt.Errorf("inventory: %w", err)
		}

		collectors := make([]loader.Collector, 0, len(args))
		for _, p := range args {
			collectors = append(collectors, loader.FileCollector{Path: p})
		}
		comp, err := loader.CollectAll(cmd.Context(), collectors)
		if err != nil {
			return err
		}
		records = append(records, comp...)

		opt := cfg.Options()
		if compareFlags.threshold >= 0 {
			opt.SuggestThreshold = compareFlags.threshold
		}
		res := service.Run(records, opt)
		logger.Info().
			Int("rows", len(res.Rows)).
			Int("unmatched", len(res.Unmatched)).
			Int("fuzzy", res.Stats.FuzzyAttachments).
			Msg("compare done")

		w := cmd.OutOrStdout()
		renderRows(w, res)
		renderUnmatched(w, res.Unmatched)
		renderStats(w, res.Stats)

		if compareFlags.out == "" {
			return nil
		}
		f, err := os.Create(compareFlags.out)
		if err != nil {
			return err
		}
		if err := fileio.WriteComparison(f, res); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

func loadInventory(path string, headerRow int) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if headerRow == 0 {
		rows, err := fileio.ReadAnyRows(f, path)
		if err != nil {
			return nil, err
		}
		return loader.InventoryPositional(rows, cfg.Brands)
	}
	maps, err := fileio.ReadAnyMaps(f, path, headerRow)
	if err != nil {
		return nil, err
	}
	m := loader.DefaultMapping
	m.HeaderRow = headerRow
	return loader.Inventory(maps, m, cfg.Brands)
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func renderRows(w io.Writer, res model.Result) {
	t := newTable(w)
	header := table.Row{"Qty", "Model", "Our Price"}
	for _, s := range res.Sources {
		header = append(header, s)
	}
	header = append(header, "Min", "Delta", "Position")
	t.AppendHeader(header)

	for _, r := range res.Rows {
		row := table.Row{r.Quantity, r.Model, fmt.Sprintf("%.0f", r.OurPrice)}
		for _, s := range res.Sources {
			cell := "-"
			if o, ok := r.Offers[s]; ok {
				cell = o.Display()
			}
			row = append(row, cell)
		}
		row = append(row, fmt.Sprintf("%.0f", r.MinCompetitor), fmt.Sprintf("%+.0f", r.Delta), positionText(r.Position))
		t.AppendRow(row)
	}
	t.Render()
}

func positionText(p model.Position) string {
	switch p {
	case model.Cheaper:
		return text.FgGreen.Sprint(p)
	case model.MoreExpensive:
		return text.FgRed.Sprint(p)
	default:
		return string(p)
	}
}

func renderUnmatched(w io.Writer, us []model.Unmatched) {
	if len(us) == 0 {
		return
	}
	t := newTable(w)
	t.SetTitle("Unmatched")
	t.AppendHeader(table.Row{"Model", "Name", "Our Price", "Suggestion", "Score"})
	for _, u := range us {
		score := ""
		if u.Score != nil {
			score = fmt.Sprintf("%.2f", *u.Score)
		}
		t.AppendRow(table.Row{u.Model, u.Name, fmt.Sprintf("%.0f", u.OurPrice), u.Suggestion, score})
	}
	t.Render()
}

func renderStats(w io.Writer, st model.Stats) {
	t := newTable(w)
	t.SetTitle("Statistics")
	t.AppendRows([]table.Row{
		{"Products", st.Products},
		{"Total quantity", st.TotalQuantity},
		{"Total value", fmt.Sprintf("%.0f", st.TotalValue)},
		{"Avg competitors", fmt.Sprintf("%.2f", st.AvgCompetitors)},
		{"Cheaper / same / more expensive", fmt.Sprintf("%d / %d / %d", st.Cheaper, st.Same, st.MoreExpensive)},
		{"Fuzzy matches", st.FuzzyAttachments},
		{"Records without model", st.RecordsWithoutKey},
	})
	t.Render()
}
