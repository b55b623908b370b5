package loader

import (
	"strings"

	"price-recon-service/internal/compare/model"
	"price-recon-service/internal/utils"
)

// Competitor разбирает выгрузку парсера. Два формата:
//   - final_price, regular_price, discount_price, has_discount (ALTA, KONTAKT, ELITE, DIM_KAVA);
//   - price, discount_price (COFFEEHUB): скидка есть, если discount_price задан и отличается от price.
func Competitor(maps []map[string]string, src model.Source) ([]model.Record, error) {
	var out []model.Record
	for _, rec := range maps {
		name, _ := lookup(rec, "name")
		if name == "" {
			continue
		}
		r := model.Record{Name: name, Source: src}
		r.URL, _ = lookup(rec, "url")

		discount := priceOf(rec, "discount_price")
		if final, ok := lookup(rec, "final_price"); ok {
			r.Price, _ = utils.ParsePrice(final)
			r.RegularPrice = priceOf(rec, "regular_price")
			r.DiscountPrice = discount
			hd, _ := lookup(rec, "has_discount")
			r.HasDiscount = parseBool(hd, false)
		} else {
			r.Price = priceOf(rec, "price")
			r.RegularPrice = r.Price
			r.DiscountPrice = discount
			r.HasDiscount = discount > 0 && discount != r.Price
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return nil, ErrNoRows
	}
	return out, nil
}

func priceOf(rec map[string]string, col string) float64 {
	v, ok := lookup(rec, col)
	if !ok || strings.EqualFold(v, "nan") {
		return 0
	}
	p, _ := utils.ParsePrice(v)
	return p
}
