package service

import (
	"math"
	"sort"

	"price-recon-service/internal/compare/model"
	"price-recon-service/internal/modelcode"
)

// разница цен меньше этого считается равной
const priceEps = 0.005

// Run: основное сравнение: группировка, строки сравнения, несопоставленные позиции, статистика.
func Run(records []model.Record, opt model.Options) model.Result {
	gs := BuildGroups(records)

	keys := gs.Keys()
	sort.Strings(keys)

	rows := make([]model.Row, 0, len(keys))
	var unmatched []model.Unmatched
	var competitorKeys []string

	for _, key := range keys {
		g, _ := gs.Get(key)
		if g.HasCompetitor() {
			competitorKeys = append(competitorKeys, key)
		}
		inv := g.FirstInventory()
		if inv == nil {
			continue // только наши позиции
		}
		offers := offersOf(g)
		if len(offers) == 0 {
			unmatched = append(unmatched, model.Unmatched{
				Key:      key,
				Model:    rawModel(inv.Name),
				Name:     inv.Name,
				OurPrice: inv.Price,
			})
			continue
		}
		rows = append(rows, buildRow(key, inv, offers))
	}

	if opt.SuggestThreshold > 0 && len(unmatched) > 0 && len(competitorKeys) > 0 {
		idx := buildIndex(competitorKeys)
		for i := range unmatched {
			if k, s, ok := idx.nearest(unmatched[i].Key, opt.SuggestThreshold); ok {
				score := s
				unmatched[i].Suggestion = k
				unmatched[i].Score = &score
			}
		}
	}

	stats := computeStats(rows)
	stats.FuzzyAttachments = gs.Fuzzy
	stats.Groups = gs.Len()
	stats.RecordsWithoutKey = gs.Skipped

	return model.Result{
		Rows:      rows,
		Unmatched: unmatched,
		Sources:   Columns(rows, opt.SourceOrder),
		Stats:     stats,
		Opts:      opt,
		Records:   records,
	}
}

// одна цена на источник; при дублях выигрывает последняя запись
func offersOf(g *model.Group) map[model.Source]model.Offer {
	out := make(map[model.Source]model.Offer)
	for _, r := range g.Records {
		if r.IsInventory() {
			continue
		}
		out[r.Source] = model.Offer{
			Source:        r.Source,
			Name:          r.Name,
			Price:         r.Price,
			RegularPrice:  r.RegularPrice,
			DiscountPrice: r.DiscountPrice,
			HasDiscount:   r.HasDiscount,
			URL:           r.URL,
		}
	}
	return out
}

func buildRow(key string, inv *model.Record, offers map[model.Source]model.Offer) model.Row {
	row := model.Row{
		Key:      key,
		Model:    rawModel(inv.Name),
		Name:     inv.Name,
		Quantity: inv.Quantity,
		OurPrice: inv.Price,
		Offers:   offers,
	}
	minPrice := math.MaxFloat64
	for _, o := range offers {
		if p := o.Effective(); p > 0 && p < minPrice {
			minPrice = p
		}
	}
	if minPrice == math.MaxFloat64 || inv.Price <= 0 {
		return row
	}
	row.MinCompetitor = minPrice
	row.Delta = inv.Price - minPrice
	switch {
	case math.Abs(row.Delta) < priceEps:
		row.Delta = 0
		row.Position = model.Same
	case row.Delta < 0:
		row.Position = model.Cheaper
	default:
		row.Position = model.MoreExpensive
	}
	return row
}

func rawModel(name string) string {
	m, _ := modelcode.Extract(name)
	return m
}

// Columns: порядок колонок конкурентов: сначала заданный, затем остальные по алфавиту.
func Columns(rows []model.Row, order []model.Source) []model.Source {
	if order == nil {
		order = model.DefaultSourceOrder
	}
	seen := make(map[model.Source]bool, len(order))
	out := make([]model.Source, 0, len(order))
	for _, s := range order {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	var extra []model.Source
	for _, r := range rows {
		for s := range r.Offers {
			if !seen[s] {
				seen[s] = true
				extra = append(extra, s)
			}
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

func computeStats(rows []model.Row) model.Stats {
	st := model.Stats{Products: len(rows)}
	if len(rows) == 0 {
		return st
	}
	st.MinOurPrice = math.MaxFloat64
	sumPrice, sumComp := 0.0, 0
	for _, r := range rows {
		st.TotalQuantity += r.Quantity
		st.TotalValue += r.Quantity * r.OurPrice
		sumPrice += r.OurPrice
		st.MinOurPrice = math.Min(st.MinOurPrice, r.OurPrice)
		st.MaxOurPrice = math.Max(st.MaxOurPrice, r.OurPrice)

		n := len(r.Offers)
		sumComp += n
		if n >= 1 {
			st.WithCompetitors1++
		}
		if n >= 2 {
			st.WithCompetitors2++
		}
		if n >= 3 {
			st.WithCompetitors3++
		}
		switch r.Position {
		case model.Cheaper:
			st.Cheaper++
		case model.Same:
			st.Same++
		case model.MoreExpensive:
			st.MoreExpensive++
		}
	}
	st.AvgOurPrice = sumPrice / float64(len(rows))
	st.AvgCompetitors = float64(sumComp) / float64(len(rows))
	return st
}
