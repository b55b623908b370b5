package service

import (
	"strings"

	"price-recon-service/internal/compare/model"
	"price-recon-service/internal/modelcode"
)

// минимальная длина ключа для сопоставления по вхождению подстроки
const minContainLen = 5

type keyed struct {
	rec *model.Record
	key string
}

// BuildGroups группирует записи по нормализованному коду модели.
//
// 1) точный проход: ключ = NormalizeForMatching(Extract(name)), записи без кода пропускаются;
// 2) нечёткий проход: группа с нашей позицией и без конкурентов получает записи конкурентов,
//    чей ключ содержит её ключ или содержится в нём (оба ключа длиной >= 5).
//    EC9255 ↔ EC9255M, ECI341 ↔ ECI341BK.
//
// Записи копируются один раз; группы ссылаются на копии по указателю.
func BuildGroups(records []model.Record) *model.Groups {
	recs := make([]model.Record, len(records))
	copy(recs, records)

	gs := model.NewGroups()
	all := make([]keyed, 0, len(recs))
	for i := range recs {
		r := &recs[i]
		code, _, ok := modelcode.ExtractTagged(r.Name)
		if !ok || code.Normalized == "" {
			gs.Skipped++
			continue
		}
		gs.Add(code.Normalized, r)
		all = append(all, keyed{rec: r, key: code.Normalized})
	}

	for _, key := range gs.Keys() {
		g, _ := gs.Get(key)
		if !g.HasInventory() || g.HasCompetitor() {
			continue
		}
		if len(key) < minContainLen {
			continue
		}
		for _, c := range all {
			if c.rec.IsInventory() || c.key == key || len(c.key) < minContainLen {
				continue
			}
			if !strings.Contains(c.key, key) && !strings.Contains(key, c.key) {
				continue
			}
			if g.Contains(c.rec) {
				continue
			}
			g.Records = append(g.Records, c.rec)
			gs.Fuzzy++
		}
	}
	return gs
}
