package navigation

import (
	"testing"

	"github.com/smartcondominium/portal/internal/core/dispatch"
	"github.com/smartcondominium/portal/internal/core/domain"
)

func TestTree_NestingIsAtMostOneLevel(t *testing.T) {
	for _, kind := range []domain.RoleKind{domain.RoleAdmin, domain.RoleResident} {
		for _, n := range Tree(kind) {
			if n.IsParent() && n.View != "" {
				t.Fatalf("%s: parent %q carries a view", kind, n.Key)
			}
			for _, c := range n.SubLinks {
				if c.IsParent() {
					t.Fatalf("%s: %q nests a second level", kind, c.Key)
				}
			}
		}
	}
}

func TestLeaves_ResolveWithoutFallback(t *testing.T) {
	for _, kind := range []domain.RoleKind{domain.RoleAdmin, domain.RoleResident} {
		leaves := Leaves(kind)
		if len(leaves) == 0 {
			t.Fatalf("%s: no leaves", kind)
		}
		for _, v := range leaves {
			if res := dispatch.Resolve(v, kind); res.Fallback {
				t.Errorf("%s: menu leaf %q falls back to the home screen", kind, v)
			}
		}
	}
}

func TestDefaultView_MatchesDispatcher(t *testing.T) {
	for _, kind := range []domain.RoleKind{domain.RoleAdmin, domain.RoleResident, "otro"} {
		if got, want := DefaultView(kind), dispatch.DefaultView(kind); got != want {
			t.Fatalf("%s: navigation default %q, dispatch default %q", kind, got, want)
		}
	}
}

func TestUnknownKindGetsResidentTree(t *testing.T) {
	got := Tree("otro")
	want := Tree(domain.RoleResident)
	if len(got) != len(want) || got[1].Key != want[1].Key {
		t.Fatalf("expected resident tree for unknown kind")
	}
}

func TestFind_FinanzasConfigurarCuotas(t *testing.T) {
	n, parentKey, ok := Find(domain.RoleAdmin, "cuotas")
	if !ok {
		t.Fatal("cuotas not found in admin tree")
	}
	if parentKey != "finanzas" || n.Label != "Configurar Cuotas" || n.View != dispatch.ViewCuotas {
		t.Fatalf("unexpected node %+v under %q", n, parentKey)
	}

	if _, _, ok := Find(domain.RoleResident, "cuotas"); ok {
		t.Fatal("residents must not see fee configuration")
	}
	if _, _, ok := Find(domain.RoleResident, ActionSignOut); !ok {
		t.Fatal("chrome entries are searchable for every role")
	}
}

func TestTree_ReturnsCopy(t *testing.T) {
	tree := Tree(domain.RoleAdmin)
	tree[2].SubLinks[0].Label = "mutated"
	if Tree(domain.RoleAdmin)[2].SubLinks[0].Label == "mutated" {
		t.Fatal("Tree shares its backing nodes")
	}
}

func TestExpansion_ToggleAndEncode(t *testing.T) {
	e := ParseExpansion(" reportes, finanzas ,,")
	if !e["finanzas"] || !e["reportes"] || len(e) != 2 {
		t.Fatalf("unexpected parse %v", e)
	}
	e.Toggle("finanzas").Toggle("comunicacion")
	if got := e.Encode(); got != "comunicacion,reportes" {
		t.Fatalf("unexpected encoding %q", got)
	}
	if got := ParseExpansion("").Encode(); got != "" {
		t.Fatalf("expected empty encoding, got %q", got)
	}
}

func TestBuild_MarksActiveWithoutExpanding(t *testing.T) {
	m := Build(domain.RoleAdmin, dispatch.ViewCuotas, Expansion{})

	var finanzas *MenuItem
	for i := range m.Items {
		if m.Items[i].Key == "finanzas" {
			finanzas = &m.Items[i]
		}
	}
	if finanzas == nil {
		t.Fatal("finanzas missing from menu")
	}
	if !finanzas.Active {
		t.Fatal("parent of the active leaf must be marked active")
	}
	if finanzas.Expanded {
		t.Fatal("activating a leaf must not expand its parent")
	}
	if len(finanzas.Children) != 2 || !finanzas.Children[0].Active || finanzas.Children[1].Active {
		t.Fatalf("unexpected children %+v", finanzas.Children)
	}
	if len(m.Chrome) != 2 || m.Chrome[1].Key != ActionSignOut {
		t.Fatalf("unexpected chrome %+v", m.Chrome)
	}

	m = Build(domain.RoleAdmin, dispatch.ViewDashboard, Expansion{"finanzas": true})
	for _, it := range m.Items {
		if it.Key == "finanzas" && (!it.Expanded || it.Active) {
			t.Fatalf("expected finanzas expanded and inactive, got %+v", it)
		}
	}
}
