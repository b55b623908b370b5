package model

import "fmt"

// Source: откуда пришла запись: INVENTORY или имя конкурента.
type Source string

const Inventory Source = "INVENTORY"

// Порядок колонок конкурентов по умолчанию (наш сайт первым).
var DefaultSourceOrder = []Source{"DIM_KAVA", "ALTA", "KONTAKT", "ELITE", "COFFEEHUB"}

// Record: одна строка остатков или спарсенного прайса. После загрузки не меняется.
type Record struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	RegularPrice  float64 `json:"regularPrice,omitempty"`  // 0: нет
	DiscountPrice float64 `json:"discountPrice,omitempty"` // 0: нет
	HasDiscount   bool    `json:"hasDiscount"`
	Quantity      float64 `json:"quantity,omitempty"` // только для остатков
	URL           string  `json:"url,omitempty"`
	Source        Source  `json:"source"`
}

func (r *Record) IsInventory() bool { return r.Source == Inventory }

// Mapping: какие колонки брать из таблицы остатков.
type Mapping struct {
	NameKey   string // имя колонки с наименованием ("a|b": альтернативы)
	QtyKey    string // имя колонки с количеством
	PriceKey  string // имя колонки с ценой
	HeaderRow int    // строка заголовков (1-based), 0: без заголовков (позиционный разбор)
}

type Options struct {
	SourceOrder      []Source `json:"sourceOrder"`
	SuggestThreshold float64  `json:"suggestThreshold"` // 0: подсказки выключены
}

// Offer: цена конкурента в строке сравнения.
type Offer struct {
	Source        Source  `json:"source"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	RegularPrice  float64 `json:"regularPrice,omitempty"`
	DiscountPrice float64 `json:"discountPrice,omitempty"`
	HasDiscount   bool    `json:"hasDiscount"`
	URL           string  `json:"url,omitempty"`
}

// Position: наша цена относительно минимальной у конкурентов.
type Position string

const (
	Cheaper       Position = "cheaper"
	Same          Position = "same"
	MoreExpensive Position = "more_expensive"
)

type Row struct {
	Key           string           `json:"key"`
	Model         string           `json:"model"`
	Name          string           `json:"name"`
	Quantity      float64          `json:"quantity"`
	OurPrice      float64          `json:"ourPrice"`
	Offers        map[Source]Offer `json:"offers"`
	MinCompetitor float64          `json:"minCompetitor,omitempty"`
	Delta         float64          `json:"delta"`
	Position      Position         `json:"position,omitempty"`
}

type Unmatched struct {
	Key        string   `json:"key"`
	Model      string   `json:"model"`
	Name       string   `json:"name"`
	OurPrice   float64  `json:"ourPrice"`
	Suggestion string   `json:"suggestion,omitempty"` // ближайший ключ конкурента
	Score      *float64 `json:"score,omitempty"`
}

type Stats struct {
	Products          int     `json:"products"`
	TotalQuantity     float64 `json:"totalQuantity"`
	TotalValue        float64 `json:"totalValue"`
	AvgOurPrice       float64 `json:"avgOurPrice"`
	MinOurPrice       float64 `json:"minOurPrice"`
	MaxOurPrice       float64 `json:"maxOurPrice"`
	AvgCompetitors    float64 `json:"avgCompetitors"`
	WithCompetitors1  int     `json:"with1Competitors"`
	WithCompetitors2  int     `json:"with2Competitors"`
	WithCompetitors3  int     `json:"with3Competitors"`
	Cheaper           int     `json:"cheaper"`
	Same              int     `json:"same"`
	MoreExpensive     int     `json:"moreExpensive"`
	FuzzyAttachments  int     `json:"fuzzyAttachments"`
	Groups            int     `json:"groups"`
	RecordsWithoutKey int     `json:"recordsWithoutModel"`
}

type Result struct {
	Rows      []Row       `json:"rows"`
	Unmatched []Unmatched `json:"unmatched"`
	Sources   []Source    `json:"sources"` // порядок колонок
	Stats     Stats       `json:"stats"`
	Opts      Options     `json:"opts"`

	Records []Record `json:"-"` // входные записи, для листов по источникам в xlsx
}

// Effective: цена, по которой реально купят: со скидкой, иначе обычная.
func (o Offer) Effective() float64 {
	switch {
	case o.HasDiscount && o.DiscountPrice > 0:
		return o.DiscountPrice
	case o.Price > 0:
		return o.Price
	default:
		return o.RegularPrice
	}
}

// Display: ячейка отчёта: "обычная \ со скидкой", иначе обычная, иначе цена, иначе "-".
func (o Offer) Display() string {
	switch {
	case o.HasDiscount && o.RegularPrice > 0 && o.DiscountPrice > 0:
		return fmt.Sprintf("%.0f \\ %.0f", o.RegularPrice, o.DiscountPrice)
	case o.RegularPrice > 0:
		return fmt.Sprintf("%.0f", o.RegularPrice)
	case o.Price > 0:
		return fmt.Sprintf("%.0f", o.Price)
	default:
		return "-"
	}
}
