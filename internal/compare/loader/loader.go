// Package loader превращает выгрузки (остатки, прайсы конкурентов) в model.Record.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"price-recon-service/internal/compare/model"
	"price-recon-service/internal/fileio"
)

// ErrNoRows: в файле не нашлось ни одной пригодной строки.
var ErrNoRows = errors.New("no usable rows")

// Collector: источник цен конкурента (парсер сайта, файл выгрузки и т.п.).
type Collector interface {
	Source() model.Source
	Collect(ctx context.Context) ([]model.Record, error)
}

// FileCollector читает готовую выгрузку парсера с диска.
type FileCollector struct {
	Path string
	Src  model.Source // пусто: по имени файла
}

func (c FileCollector) Source() model.Source {
	if c.Src != "" {
		return c.Src
	}
	return SourceFromFilename(c.Path)
}

func (c FileCollector) Collect(ctx context.Context) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	maps, err := fileio.ReadAnyMaps(f, c.Path, 1)
	if err != nil {
		return nil, err
	}
	return Competitor(maps, c.Source())
}

// CollectAll опрашивает источники параллельно; порядок записей совпадает с порядком cs.
// Источник без строк (ErrNoRows) пропускается, любая другая ошибка прерывает сбор.
func CollectAll(ctx context.Context, cs []Collector) ([]model.Record, error) {
	parts := make([][]model.Record, len(cs))
	g, ctx := errgroup.WithContext(ctx)
	for i, c := range cs {
		i, c := i, c
		g.Go(func() error {
			recs, err := c.Collect(ctx)
			if errors.Is(err, ErrNoRows) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("%s: %w", c.Source(), err)
			}
			parts[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var out []model.Record
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

var filePrefixes = []struct {
	prefix string
	src    model.Source
}{
	{"dimkava", "DIM_KAVA"},
	{"dim_kava", "DIM_KAVA"},
	{"alta", "ALTA"},
	{"kontakt", "KONTAKT"},
	{"elite", "ELITE"},
	{"coffeehub", "COFFEEHUB"},
}

// SourceFromFilename: "alta_delonghi_prices_20240101.xlsx" → ALTA.
// Неизвестный префикс: первое слово имени в верхнем регистре.
func SourceFromFilename(name string) model.Source {
	base := strings.ToLower(filepath.Base(name))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	for _, p := range filePrefixes {
		if strings.HasPrefix(base, p.prefix) {
			return p.src
		}
	}
	if i := strings.IndexAny(base, "_- ."); i > 0 {
		base = base[:i]
	}
	if base == "" {
		return "UNKNOWN"
	}
	return model.Source(strings.ToUpper(base))
}
