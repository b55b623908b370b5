package model

// Group: записи с эквивалентным кодом модели. Записи разделяются между группами
// по указателю (нечёткий проход не перемещает, а добавляет).
type Group struct {
	Key     string    `json:"key"`
	Records []*Record `json:"records"`
}

// HasInventory: есть ли в группе наша позиция.
func (g *Group) HasInventory() bool {
	for _, r := range g.Records {
		if r.IsInventory() {
			return true
		}
	}
	return false
}

// HasCompetitor: есть ли в группе хоть одна запись не из остатков.
func (g *Group) HasCompetitor() bool {
	for _, r := range g.Records {
		if !r.IsInventory() {
			return true
		}
	}
	return false
}

// FirstInventory: первая запись остатков или nil.
func (g *Group) FirstInventory() *Record {
	for _, r := range g.Records {
		if r.IsInventory() {
			return r
		}
	}
	return nil
}

// Contains: по идентичности указателя.
func (g *Group) Contains(r *Record) bool {
	for _, x := range g.Records {
		if x == r {
			return true
		}
	}
	return false
}

// Groups: группы в порядке первого появления ключа.
type Groups struct {
	order []string
	byKey map[string]*Group

	Fuzzy   int // сколько записей добавлено нечётким проходом
	Skipped int // записи без кода модели
}

func NewGroups() *Groups {
	return &Groups{byKey: make(map[string]*Group)}
}

// Add кладёт запись в группу key, создавая её при необходимости.
func (gs *Groups) Add(key string, r *Record) *Group {
	g, ok := gs.byKey[key]
	if !ok {
		g = &Group{Key: key}
		gs.byKey[key] = g
		gs.order = append(gs.order, key)
	}
	g.Records = append(g.Records, r)
	return g
}

func (gs *Groups) Get(key string) (*Group, bool) {
	g, ok := gs.byKey[key]
	return g, ok
}

// Keys: ключи в порядке вставки (копия).
func (gs *Groups) Keys() []string {
	return append([]string(nil), gs.order...)
}

func (gs *Groups) Len() int { return len(gs.order) }
