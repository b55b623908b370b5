package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-recon-service/internal/compare/model"
)

func fixture() []model.Record {
	return []model.Record{
		{Name: "DeLonghi ECAM22.114.B", Quantity: 3, Price: 1000, Source: model.Inventory},
		{Name: "DeLonghi Magnifica S ECAM22.114.B", Price: 1100, RegularPrice: 1100, Source: "ALTA"},
		{Name: "ECAM 22.114.B", Price: 900, RegularPrice: 1000, DiscountPrice: 900, HasDiscount: true, Source: "KONTAKT"},
		{Name: "DeLonghi EC685.R", Quantity: 1, Price: 500, Source: model.Inventory},
		{Name: "EC685.R", Price: 500, RegularPrice: 500, Source: "DIM_KAVA"},
		{Name: "DeLonghi KG520.M", Quantity: 2, Price: 300, Source: model.Inventory},
		{Name: "DeLonghi KG521.M", Price: 320, Source: "ELITE"},
	}
}

func TestRun(t *testing.T) {
	res := Run(fixture(), model.Options{SuggestThreshold: 0.85})

	require.Len(t, res.Rows, 2)
	ec, ecam := res.Rows[0], res.Rows[1]

	assert.Equal(t, "EC685R", ec.Key)
	assert.Equal(t, "EC685.R", ec.Model)
	assert.Equal(t, model.Same, ec.Position)
	assert.Zero(t, ec.Delta)

	assert.Equal(t, "ECAM22114B", ecam.Key)
	assert.Equal(t, "ECAM22.114.B", ecam.Model)
	assert.Len(t, ecam.Offers, 2)
	assert.Equal(t, 900.0, ecam.MinCompetitor)
	assert.Equal(t, 100.0, ecam.Delta)
	assert.Equal(t, model.MoreExpensive, ecam.Position)
	assert.Equal(t, `1000 \ 900`, ecam.Offers["KONTAKT"].Display())

	require.Len(t, res.Unmatched, 1)
	u := res.Unmatched[0]
	assert.Equal(t, "KG520M", u.Key)
	assert.Equal(t, "KG521M", u.Suggestion)
	require.NotNil(t, u.Score)
	assert.Greater(t, *u.Score, 0.85)

	st := res.Stats
	assert.Equal(t, 2, st.Products)
	assert.Equal(t, 4.0, st.TotalQuantity)
	assert.Equal(t, 3500.0, st.TotalValue)
	assert.Equal(t, 750.0, st.AvgOurPrice)
	assert.Equal(t, 500.0, st.MinOurPrice)
	assert.Equal(t, 1000.0, st.MaxOurPrice)
	assert.Equal(t, 1.5, st.AvgCompetitors)
	assert.Equal(t, 2, st.WithCompetitors1)
	assert.Equal(t, 1, st.WithCompetitors2)
	assert.Equal(t, 0, st.WithCompetitors3)
	assert.Equal(t, 1, st.Same)
	assert.Equal(t, 1, st.MoreExpensive)
	assert.Equal(t, 4, st.Groups)
	assert.Zero(t, st.FuzzyAttachments)

	assert.Equal(t, model.DefaultSourceOrder, res.Sources)
	assert.Len(t, res.Records, len(fixture()))
}

func TestRun_NoSuggestionsWhenDisabled(t *testing.T) {
	res := Run(fixture(), model.Options{})
	require.Len(t, res.Unmatched, 1)
	assert.Empty(t, res.Unmatched[0].Suggestion)
	assert.Nil(t, res.Unmatched[0].Score)
}

func TestRun_Empty(t *testing.T) {
	res := Run(nil, model.Options{})
	assert.Empty(t, res.Rows)
	assert.Empty(t, res.Unmatched)
	assert.Equal(t, 0, res.Stats.Products)
}

func TestColumns(t *testing.T) {
	rows := []model.Row{
		{Offers: map[model.Source]model.Offer{"VEGA": {}, "ALTA": {}}},
		{Offers: map[model.Source]model.Offer{"COFFEEPIN": {}}},
	}
	got := Columns(rows, []model.Source{"ALTA", "KONTAKT", "ALTA"})
	assert.Equal(t, []model.Source{"ALTA", "KONTAKT", "COFFEEPIN", "VEGA"}, got)
}

func TestOfferDisplay(t *testing.T) {
	assert.Equal(t, `1000 \ 900`, model.Offer{HasDiscount: true, RegularPrice: 1000, DiscountPrice: 900}.Display())
	assert.Equal(t, "1100", model.Offer{RegularPrice: 1100, Price: 1050}.Display())
	assert.Equal(t, "500", model.Offer{Price: 500}.Display())
	assert.Equal(t, "-", model.Offer{}.Display())
	assert.Equal(t, 900.0, model.Offer{HasDiscount: true, Price: 1000, DiscountPrice: 900}.Effective())
}

func TestIndexNearest(t *testing.T) {
	idx := buildIndex([]string{"ECAM22114B", "EC685R", "KG521M"})
	k, s, ok := idx.nearest("KG520M", 0.8)
	require.True(t, ok)
	assert.Equal(t, "KG521M", k)
	assert.Greater(t, s, 0.8)

	_, _, ok = idx.nearest("ZZZZ", 0.5)
	assert.False(t, ok)
}
