package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"price-recon-service/internal/compare/loader"
	"price-recon-service/internal/compare/model"
	"price-recon-service/internal/compare/service"
	"price-recon-service/internal/config"
	"price-recon-service/internal/fileio"
	"price-recon-service/internal/middleware"
	"price-recon-service/internal/modelcode"
)

type extractResponse struct {
	Name       string   `json:"name"`
	Found      bool     `json:"found"`
	Model      string   `json:"model,omitempty"`
	Normalized string   `json:"normalized,omitempty"`
	Rule       string   `json:"rule,omitempty"`
	Confidence float64  `json:"confidence"`
	Brand      string   `json:"brand,omitempty"`
	Variants   []string `json:"variants,omitempty"`
}

// Extract: GET /extract?name=...
func Extract(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "missing name", http.StatusBadRequest)
			return
		}
		code, tag, ok := modelcode.ExtractTagged(name)
		resp := extractResponse{Name: name, Found: ok}
		if ok {
			resp.Model = code.Raw
			resp.Normalized = code.Normalized
			resp.Rule = tag
			_, resp.Confidence = modelcode.ExtractWithConfidence(name)
			resp.Variants = modelcode.Variants(code.Raw)
		}
		if b, found := modelcode.Detect(name); found {
			resp.Brand = b.String()
		}
		writeJSON(w, requestLogger(logger, r), http.StatusOK, resp)
	}
}

type matchResponse struct {
	A           string `json:"a"`
	B           string `json:"b"`
	Strict      bool   `json:"strict"`
	Match       bool   `json:"match"`
	NormalizedA string `json:"normalizedA"`
	NormalizedB string `json:"normalizedB"`
}

// Match: GET /match?a=...&b=...&strict=true. a и b: коды моделей.
func Match(logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if !q.Has("a") || !q.Has("b") {
			http.Error(w, "missing a or b", http.StatusBadRequest)
			return
		}
		a, b := q.Get("a"), q.Get("b")
		strict := toBool(q.Get("strict"), false)
		writeJSON(w, requestLogger(logger, r), http.StatusOK, matchResponse{
			A:           a,
			B:           b,
			Strict:      strict,
			Match:       modelcode.Match(a, b, strict),
			NormalizedA: modelcode.NormalizeForMatching(a),
			NormalizedB: modelcode.NormalizeForMatching(b),
		})
	}
}

// Compare: POST /compare, multipart:
//
//	inventory    остатки (csv/xls/xlsx)
//	competitor   выгрузки конкурентов, можно несколько; источник по имени файла
//	inv_name, inv_qty, inv_price, inv_header_row   колонки остатков (inv_header_row=0 без шапки)
//	suggest_threshold, source_order, format=xlsx
func Compare(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)

		if err := r.ParseMultipartForm(int64(cfg.MaxUploadMB) << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		invFiles := r.MultipartForm.File["inventory"]
		if len(invFiles) == 0 {
			http.Error(w, "missing inventory file", http.StatusBadRequest)
			return
		}
		compFiles := r.MultipartForm.File["competitor"]
		if len(compFiles) == 0 {
			http.Error(w, "missing competitor files", http.StatusBadRequest)
			return
		}

		m := model.Mapping{
			NameKey:   r.FormValue("inv_name"),
			QtyKey:    r.FormValue("inv_qty"),
			PriceKey:  r.FormValue("inv_price"),
			HeaderRow: atoi(r.FormValue("inv_header_row"), 1),
		}
		records, err := readInventory(invFiles[0], m, cfg.Brands)
		if err != nil {
			http.Error(w, "inventory: "+err.Error(), http.StatusBadRequest)
			return
		}
		invCount := len(records)

		for _, fh := range compFiles {
			recs, err := readCompetitor(fh)
			if errors.Is(err, loader.ErrNoRows) {
				log.Warn().Str("file", fh.Filename).Msg("competitor file has no rows, skipped")
				continue
			}
			if err != nil {
				http.Error(w, fmt.Sprintf("competitor %s: %v", fh.Filename, err), http.StatusBadRequest)
				return
			}
			records = append(records, recs...)
		}

		opt := model.Options{
			SourceOrder:      toSources(r.FormValue("source_order"), cfg.SourceOrder),
			SuggestThreshold: toFloat(r.FormValue("suggest_threshold"), cfg.SuggestThreshold),
		}
		res := service.Run(records, opt)

		log.Info().
			Int("inventory", invCount).
			Int("competitors", len(records)-invCount).
			Int("rows", len(res.Rows)).
			Int("unmatched", len(res.Unmatched)).
			Int("fuzzy", res.Stats.FuzzyAttachments).
			Dur("elapsed", time.Since(start)).
			Msg("compare done")

		if r.FormValue("format") == "xlsx" {
			name := fmt.Sprintf("price_comparison_%s.xlsx", time.Now().Format("20060102_150405"))
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
			if err := fileio.WriteComparison(w, res); err != nil {
				log.Error().Err(err).Msg("write xlsx")
			}
			return
		}
		writeJSON(w, log, http.StatusOK, res)
	}
}

func readInventory(fh *multipart.FileHeader, m model.Mapping, brands []modelcode.Brand) ([]model.Record, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if m.HeaderRow == 0 {
		rows, err := fileio.ReadAnyRows(f, fh.Filename)
		if err != nil {
			return nil, err
		}
		return loader.InventoryPositional(rows, brands)
	}
	maps, err := fileio.ReadAnyMaps(f, fh.Filename, m.HeaderRow)
	if err != nil {
		return nil, err
	}
	return loader.Inventory(maps, m, brands)
}

func readCompetitor(fh *multipart.FileHeader) ([]model.Record, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	maps, err := fileio.ReadAnyMaps(f, fh.Filename, 1)
	if err != nil {
		return nil, err
	}
	return loader.Competitor(maps, loader.SourceFromFilename(fh.Filename))
}

// логгер с req_id, если middleware его проставил
func requestLogger(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if rid := middleware.GetRequestID(r); rid != "" {
		return logger.With().Str("req_id", rid).Logger()
	}
	return logger
}
