package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/pbaille/entrykit/internal/codec"
	"github.com/pbaille/entrykit/internal/domain"
	"github.com/pbaille/entrykit/internal/entry"
	"github.com/pbaille/entrykit/internal/ingredients"
	"github.com/pbaille/entrykit/internal/store"
	"github.com/pbaille/entrykit/internal/vanilla"
)

type fixture struct {
	store   *store.Store
	kinds   *vanilla.Kinds
	handler http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "entrykit.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	registry, kinds, err := vanilla.Bootstrap()
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	srv := New(s, store.NewTagCache(s, time.Minute), registry, kinds, nil, ":0")
	return &fixture{store: s, kinds: kinds, handler: srv.Handler()}
}

func (f *fixture) get(t *testing.T, path string, out any) int {
	t.Helper()
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil {
		if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return rec.Code
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	var body map[string]string
	if code := f.get(t, "/health", &body); code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("expected ok, got %d %v", code, body)
	}
}

func TestTags(t *testing.T) {
	f := newFixture(t)
	planks := domain.ID("minecraft", "planks")
	members := []domain.Identifier{domain.ID("minecraft", "oak_planks"), vanilla.Air, domain.ID("minecraft", "birch_planks")}
	if _, err := f.store.AddTagMembers(vanilla.ItemKind, planks, members); err != nil {
		t.Fatalf("add members: %v", err)
	}

	var list struct {
		Tags []domain.Tag `json:"tags"`
	}
	if code := f.get(t, "/tags", &list); code != http.StatusOK || len(list.Tags) != 1 {
		t.Fatalf("expected one tag, got %d %+v", code, list)
	}
	if list.Tags[0].Name != planks || list.Tags[0].Members != 3 {
		t.Fatalf("unexpected tag %+v", list.Tags[0])
	}

	var resolved TagResponse
	if code := f.get(t, "/tags/item/minecraft/planks", &resolved); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(resolved.Members) != 3 || len(resolved.Stacks) != 2 {
		t.Fatalf("expected air elided from stacks, got %+v", resolved)
	}
	if resolved.Stacks[0].ExactHash == "" || resolved.Stacks[0].Amount != "1" {
		t.Fatalf("unexpected stack view %+v", resolved.Stacks[0])
	}

	if code := f.get(t, "/tags/item/minecraft/logs", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown tag, got %d", code)
	}
	if code := f.get(t, "/tags/block/minecraft/planks", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown kind, got %d", code)
	}
	if code := f.get(t, "/tags/item/Bad/planks", nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid id, got %d", code)
	}
}

func TestSnapshots(t *testing.T) {
	f := newFixture(t)
	ings := []entry.Ingredient{
		ingredients.OfItems(f.kinds.Items, []domain.Identifier{domain.ID("minecraft", "stone")}, 2),
		entry.EmptyIngredient(),
		ingredients.OfFluids(f.kinds.Fluids, []domain.Identifier{domain.ID("minecraft", "water")}, domain.Whole(vanilla.Bucket)),
	}
	data, err := codec.Marshal(ings)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	snap, err := f.store.SaveSnapshot("mixed", len(ings), data)
	if err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	var list struct {
		Snapshots []domain.Snapshot `json:"snapshots"`
		Limit     int               `json:"limit"`
	}
	if code := f.get(t, "/snapshots?limit=5", &list); code != http.StatusOK || len(list.Snapshots) != 1 || list.Limit != 5 {
		t.Fatalf("expected one snapshot, got %d %+v", code, list)
	}

	var resp SnapshotResponse
	if code := f.get(t, "/snapshots/"+snap.ID[:8], &resp); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(resp.Ingredients) != 3 || len(resp.Ingredients[1]) != 0 || len(resp.Failures) != 0 {
		t.Fatalf("unexpected decode %+v", resp)
	}
	if resp.Ingredients[0][0].Amount != "2" || resp.Ingredients[2][0].Type != "minecraft:fluid" {
		t.Fatalf("unexpected stacks %+v", resp.Ingredients)
	}

	if code := f.get(t, "/snapshots/nope", nil); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestSnapshotFailuresAreReported(t *testing.T) {
	f := newFixture(t)
	list := codec.List{{
		{Type: "mymod:gas", Amount: 1, AmountDen: 1},
	}}
	stone, err := codec.SaveStack(entry.StackOf[vanilla.ItemStack](f.kinds.Items, vanilla.NewItemStack(domain.ID("minecraft", "stone"), 1, nil)))
	if err != nil {
		t.Fatalf("save stack: %v", err)
	}
	list[0] = append(list[0], stone)
	list[0][0].Value = stone.Value

	data, err := codec.MarshalList(list)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	snap, err := f.store.SaveSnapshot("broken", 1, data)
	if err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	var resp SnapshotResponse
	if code := f.get(t, "/snapshots/"+snap.ID, &resp); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if len(resp.Failures) != 1 || resp.Failures[0].Type != "mymod:gas" {
		t.Fatalf("expected one failure for mymod:gas, got %+v", resp.Failures)
	}
	if len(resp.Ingredients[0]) != 1 {
		t.Fatalf("expected the stone to survive, got %+v", resp.Ingredients[0])
	}
}
