package fileio

import (
	"fmt"
	"io"
	"slices"

	excelize "github.com/xuri/excelize/v2"

	"price-recon-service/internal/compare/model"
)

const (
	SheetComparison = "Price Comparison"
	SheetStats      = "Statistics"
	SheetUnmatched  = "Unmatched"
)

// WriteComparison пишет отчёт сравнения в xlsx: таблица, статистика, несопоставленные позиции.
func WriteComparison(w io.Writer, res model.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetComparison); err != nil {
		return err
	}

	header := []any{"Quantity", "Model", "Product Name", "Our Price"}
	for _, s := range res.Sources {
		header = append(header, string(s))
	}
	header = append(header, "Min Competitor", "Delta", "Position")
	if err := setRow(f, SheetComparison, 1, header); err != nil {
		return err
	}
	for i, r := range res.Rows {
		row := []any{r.Quantity, r.Model, r.Name, r.OurPrice}
		for _, s := range res.Sources {
			cell := "-"
			if o, ok := r.Offers[s]; ok {
				cell = o.Display()
			}
			row = append(row, cell)
		}
		row = append(row, r.MinCompetitor, r.Delta, string(r.Position))
		if err := setRow(f, SheetComparison, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SheetStats); err != nil {
		return err
	}
	st := res.Stats
	stats := [][]any{
		{"Total Products", st.Products},
		{"Total Quantity", st.TotalQuantity},
		{"Total Value", st.TotalValue},
		{"Avg Our Price", st.AvgOurPrice},
		{"Min Our Price", st.MinOurPrice},
		{"Max Our Price", st.MaxOurPrice},
		{"Avg Competitors per Product", st.AvgCompetitors},
		{"Products with 1+ Competitors", st.WithCompetitors1},
		{"Products with 2+ Competitors", st.WithCompetitors2},
		{"Products with 3+ Competitors", st.WithCompetitors3},
		{"We are cheaper", st.Cheaper},
		{"Same price", st.Same},
		{"We are more expensive", st.MoreExpensive},
		{"Fuzzy matches", st.FuzzyAttachments},
	}
	for i, r := range stats {
		if err := setRow(f, SheetStats, i+1, r); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SheetUnmatched); err != nil {
		return err
	}
	if err := setRow(f, SheetUnmatched, 1, []any{"Model", "Product Name", "Our Price", "Suggestion", "Score"}); err != nil {
		return err
	}
	for i, u := range res.Unmatched {
		var score any
		if u.Score != nil {
			score = *u.Score
		}
		if err := setRow(f, SheetUnmatched, i+2, []any{u.Model, u.Name, u.OurPrice, u.Suggestion, score}); err != nil {
			return err
		}
	}

	if err := writeSourceSheets(f, res); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, vals []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &vals)
}

// writeSourceSheets: по листу на конкурента (в порядке колонок) и лист INVENTORY последним.
func writeSourceSheets(f *excelize.File, res model.Result) error {
	bySource := make(map[model.Source][]model.Record)
	var order []model.Source
	for _, r := range res.Records {
		if r.IsInventory() {
			continue
		}
		if _, ok := bySource[r.Source]; !ok {
			order = append(order, r.Source)
		}
		bySource[r.Source] = append(bySource[r.Source], r)
	}
	sheets := make([]model.Source, 0, len(order))
	for _, s := range res.Sources {
		if _, ok := bySource[s]; ok {
			sheets = append(sheets, s)
		}
	}
	for _, s := range order {
		if !slices.Contains(sheets, s) {
			sheets = append(sheets, s)
		}
	}

	for _, s := range sheets {
		name := string(s)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("sheet %s: %w", name, err)
		}
		if err := setRow(f, name, 1, []any{"Product Name", "Price", "Regular Price", "Discount Price", "Has Discount", "URL"}); err != nil {
			return err
		}
		for i, r := range bySource[s] {
			if err := setRow(f, name, i+2, []any{r.Name, r.Price, r.RegularPrice, r.DiscountPrice, r.HasDiscount, r.URL}); err != nil {
				return err
			}
		}
	}

	var inv []model.Record
	for _, r := range res.Records {
		if r.IsInventory() {
			inv = append(inv, r)
		}
	}
	if len(inv) == 0 {
		return nil
	}
	name := string(model.Inventory)
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if err := setRow(f, name, 1, []any{"Product Name", "Quantity", "Our Cost Price"}); err != nil {
		return err
	}
	for i, r := range inv {
		if err := setRow(f, name, i+2, []any{r.Name, r.Quantity, r.Price}); err != nil {
			return err
		}
	}
	return nil
}
