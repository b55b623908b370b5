package fileio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"

	"price-recon-service/internal/compare/model"
)

func TestReadAnyMaps_CSV(t *testing.T) {
	in := "name,price\nDeLonghi EC685.R, 500 \n,\n"
	got, err := ReadAnyMaps(strings.NewReader(in), "alta_delonghi_prices.csv", 1)
	require.NoError(t, err)
	assert.Equal(t, []map[string]string{{"name": "DeLonghi EC685.R", "price": "500"}}, got)
}

func TestReadAnyMaps_SemicolonCSV(t *testing.T) {
	in := "name;price;\nECAM22.114.B;1 299,00;x\n"
	got, err := ReadAnyMaps(strings.NewReader(in), "x.CSV", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1 299,00", got[0]["price"])
	assert.Equal(t, "x", got[0]["Column 3"])
}

func TestReadAnyRows_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"name", "final_price"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"DeLonghi ECAM22.114.B", 1200}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ReadAnyRows(bytes.NewReader(buf.Bytes()), "kontakt.xlsx")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"DeLonghi ECAM22.114.B", "1200"}, rows[1])

	maps, err := ReadAnyMaps(bytes.NewReader(buf.Bytes()), "kontakt.xlsx", 1)
	require.NoError(t, err)
	assert.Equal(t, "1200", maps[0]["final_price"])
}

func TestReadAnyRows_Unsupported(t *testing.T) {
	_, err := ReadAnyRows(strings.NewReader(""), "prices.pdf")
	assert.Error(t, err)
}

func TestPickHeader_FillsBlanks(t *testing.T) {
	h := pickHeader([][]string{{"name", " ", "qty"}}, 1)
	assert.Equal(t, []string{"name", "Column 2", "qty"}, h)
}

func TestWriteComparison(t *testing.T) {
	score := 0.93
	res := model.Result{
		Sources: []model.Source{"DIM_KAVA", "ALTA"},
		Rows: []model.Row{{
			Key: "ECAM22114B", Model: "ECAM22.114.B", Name: "DeLonghi ECAM22.114.B",
			Quantity: 3, OurPrice: 1000,
			Offers: map[model.Source]model.Offer{
				"ALTA": {Source: "ALTA", HasDiscount: true, RegularPrice: 1100, DiscountPrice: 950},
			},
			MinCompetitor: 950, Delta: 50, Position: model.MoreExpensive,
		}},
		Unmatched: []model.Unmatched{{Key: "KG520M", Model: "KG520.M", Name: "DeLonghi KG520.M", OurPrice: 300, Suggestion: "KG521M", Score: &score}},
		Stats:     model.Stats{Products: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteComparison(&buf, res))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetComparison, SheetStats, SheetUnmatched}, f.GetSheetList())

	rows, err := f.GetRows(SheetComparison)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Quantity", "Model", "Product Name", "Our Price", "DIM_KAVA", "ALTA", "Min Competitor", "Delta", "Position"}, rows[0])
	assert.Equal(t, "ECAM22.114.B", rows[1][1])
	assert.Equal(t, "-", rows[1][4])
	assert.Equal(t, `1100 \ 950`, rows[1][5])
	assert.Equal(t, "more_expensive", rows[1][8])

	v, err := f.GetCellValue(SheetUnmatched, "D2")
	require.NoError(t, err)
	assert.Equal(t, "KG521M", v)
}

func TestWriteComparison_SourceSheets(t *testing.T) {
	res := model.Result{
		Sources: []model.Source{"DIM_KAVA", "ALTA"},
		Records: []model.Record{
			{Name: "DeLonghi EC685.R", Price: 500, Quantity: 2, Source: model.Inventory},
			{Name: "DeLonghi EC685.R", Price: 520, URL: "https://example.ge/1", Source: "VEGA"},
			{Name: "DeLonghi EC685.R", Price: 510, RegularPrice: 510, Source: "ALTA"},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteComparison(&buf, res))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetComparison, SheetStats, SheetUnmatched, "ALTA", "VEGA", "INVENTORY"}, f.GetSheetList())
	v, err := f.GetCellValue("VEGA", "F2")
	require.NoError(t, err)
	assert.Equal(t, "https://example.ge/1", v)
	v, err = f.GetCellValue("INVENTORY", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}
