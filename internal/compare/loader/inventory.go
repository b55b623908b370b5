package loader

import (
	"math"
	"strings"

	"price-recon-service/internal/compare/model"
	"price-recon-service/internal/modelcode"
	"price-recon-service/internal/utils"
)

// DefaultMapping: колонки типовой выгрузки остатков из 1С.
var DefaultMapping = model.Mapping{
	NameKey:   "Наименование|Номенклатура|name",
	QtyKey:    "Количество|Кол-во|qty|quantity",
	PriceKey:  "Цена|Розничная цена|price",
	HeaderRow: 1,
}

// Inventory разбирает остатки с заголовками. Пустые ключи Mapping берутся из DefaultMapping.
// Остаются позиции выбранных брендов с количеством и ценой больше нуля.
func Inventory(maps []map[string]string, m model.Mapping, brands []modelcode.Brand) ([]model.Record, error) {
	if m.NameKey == "" {
		m.NameKey = DefaultMapping.NameKey
	}
	if m.QtyKey == "" {
		m.QtyKey = DefaultMapping.QtyKey
	}
	if m.PriceKey == "" {
		m.PriceKey = DefaultMapping.PriceKey
	}

	var out []model.Record
	var nameKey, qtyKey, priceKey string
	for _, rec := range maps {
		if looksLikeHeaderMap(rec) {
			continue
		}
		// у всех строк одни и те же заголовки
		if nameKey == "" {
			nameKey = resolveKey(rec, m.NameKey)
			qtyKey = resolveKey(rec, m.QtyKey)
			priceKey = resolveKey(rec, m.PriceKey)
		}

		name := strings.TrimSpace(rec[nameKey])
		if name == "" || !modelcode.AnyIn(name, brands) {
			continue
		}
		qty, _ := utils.ParseFloatRU(rec[qtyKey])
		price, _ := utils.ParseFloatRU(rec[priceKey])
		if r, ok := inventoryRecord(name, qty, price); ok {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoRows
	}
	return out, nil
}

// InventoryPositional разбирает выгрузку без заголовков (остатки.xls).
// Берутся непустые ячейки строки; позиции name/qty/price зависят от их числа:
// 5 → 1,2,3; 6 → 1,3,4; 7 → 1,4,5. Остальные строки пропускаются.
func InventoryPositional(rows [][]string, brands []modelcode.Brand) ([]model.Record, error) {
	var out []model.Record
	for _, row := range rows {
		vals := make([]string, 0, len(row))
		for _, c := range row {
			if c = strings.TrimSpace(c); c != "" {
				vals = append(vals, c)
			}
		}

		var qi, pi int
		switch len(vals) {
		case 5:
			qi, pi = 2, 3
		case 6:
			qi, pi = 3, 4
		case 7:
			qi, pi = 4, 5
		default:
			continue
		}
		name := vals[1]
		if !modelcode.AnyIn(name, brands) {
			continue
		}
		qty, ok := utils.ParseFloatRU(vals[qi])
		if !ok {
			continue
		}
		price, ok := utils.ParseFloatRU(vals[pi])
		if !ok {
			continue
		}
		if r, ok := inventoryRecord(name, qty, price); ok {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoRows
	}
	return out, nil
}

func inventoryRecord(name string, qty, price float64) (model.Record, bool) {
	if qty <= 0 || price <= 0 {
		return model.Record{}, false
	}
	return model.Record{
		Name:     name,
		Price:    price,
		Quantity: math.Trunc(qty),
		Source:   model.Inventory,
	}, true
}
