package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-recon-service/internal/compare/model"
)

func names(g *model.Group) []string {
	out := make([]string, 0, len(g.Records))
	for _, r := range g.Records {
		out = append(out, string(r.Source)+":"+r.Name)
	}
	return out
}

func TestBuildGroups_ContainmentAttachesVariant(t *testing.T) {
	gs := BuildGroups([]model.Record{
		{Name: "Delonghi ECAM22.114", Source: model.Inventory},
		{Name: "Delonghi ECAM22.114.B", Source: "ALTA"},
	})

	if diff := cmp.Diff([]string{"ECAM22114", "ECAM22114B"}, gs.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	g, ok := gs.Get("ECAM22114")
	require.True(t, ok)
	want := []string{"INVENTORY:Delonghi ECAM22.114", "ALTA:Delonghi ECAM22.114.B"}
	if diff := cmp.Diff(want, names(g)); diff != "" {
		t.Errorf("group mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, g.HasCompetitor())
	assert.Equal(t, 1, gs.Fuzzy)

	origin, _ := gs.Get("ECAM22114B")
	require.Len(t, origin.Records, 1, "attached record stays in its own group")
	assert.Same(t, origin.Records[0], g.Records[1])
}

func TestBuildGroups_SharedAcrossVariants(t *testing.T) {
	gs := BuildGroups([]model.Record{
		{Name: "DeLonghi EC9255", Source: model.Inventory},
		{Name: "DeLonghi EC9255.M", Source: "ALTA"},
		{Name: "DeLonghi EC9255.T", Source: "KONTAKT"},
	})
	g, ok := gs.Get("EC9255")
	require.True(t, ok)
	want := []string{"INVENTORY:DeLonghi EC9255", "ALTA:DeLonghi EC9255.M", "KONTAKT:DeLonghi EC9255.T"}
	if diff := cmp.Diff(want, names(g)); diff != "" {
		t.Errorf("group mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, gs.Fuzzy)
}

func TestBuildGroups_ExactMatchDisablesFuzzyPass(t *testing.T) {
	gs := BuildGroups([]model.Record{
		{Name: "DeLonghi EC685.R", Source: model.Inventory},
		{Name: "EC685.R Dedica", Source: "ALTA"},
		{Name: "EC685.RB Dedica", Source: "ELITE"},
	})
	g, ok := gs.Get("EC685R")
	require.True(t, ok)
	assert.Len(t, g.Records, 2)
	assert.Zero(t, gs.Fuzzy)
}

func TestBuildGroups_ShortKeysNeverContain(t *testing.T) {
	gs := BuildGroups([]model.Record{
		{Name: "Melitta E95", Source: model.Inventory},
		{Name: "Melitta E950", Source: "ALTA"},
	})
	g, ok := gs.Get("E95")
	require.True(t, ok)
	assert.Len(t, g.Records, 1)
	assert.Zero(t, gs.Fuzzy)
}

func TestBuildGroups_SkipsNamesWithoutModel(t *testing.T) {
	in := []model.Record{
		{Name: "Milk jug 350ml", Source: model.Inventory},
		{Name: "DeLonghi EC685.R", Source: "ALTA"},
	}
	gs := BuildGroups(in)
	assert.Equal(t, 1, gs.Skipped)
	assert.Equal(t, []string{"EC685R"}, gs.Keys())

	// входной срез не трогаем
	assert.Equal(t, "Milk jug 350ml", in[0].Name)
}

func TestBuildGroups_Deterministic(t *testing.T) {
	in := []model.Record{
		{Name: "DeLonghi KG520.M", Source: "ALTA"},
		{Name: "DeLonghi EC9255", Source: model.Inventory},
		{Name: "DeLonghi EC9255.M", Source: "ALTA"},
		{Name: "DeLonghi ECAM22.114.B", Source: model.Inventory},
	}
	first := BuildGroups(in)
	for i := 0; i < 5; i++ {
		again := BuildGroups(in)
		require.Equal(t, first.Keys(), again.Keys())
		for _, k := range first.Keys() {
			a, _ := first.Get(k)
			b, _ := again.Get(k)
			assert.Equal(t, names(a), names(b))
		}
	}
	assert.Equal(t, []string{"KG520M", "EC9255", "EC9255M", "ECAM22114B"}, first.Keys())
}
