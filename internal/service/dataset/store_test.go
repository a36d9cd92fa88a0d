package dataset

import (
	"testing"
)

func TestStorePutGet(t *testing.T) {
	store := NewStore()
	if store.Count() != 0 {
		t.Fatalf("new store should be empty, got %d", store.Count())
	}

	key := Key{PolygonURL: "http://a/k.kml", SpreadsheetURL: "http://a/r.xlsx", PrefixLength: 8, Simplify: true}
	ds := &Dataset{ID: "id-1", Key: key}
	store.Put(ds)

	got, err := store.Get("id-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != ds {
		t.Error("Get returned a different dataset")
	}

	byKey, ok := store.GetByKey(key)
	if !ok || byKey != ds {
		t.Error("GetByKey should find the dataset for the exact tuple")
	}
}

func TestStoreGetNotFound(t *testing.T) {
	store := NewStore()
	if _, err := store.Get("missing"); err != ErrNotFound {
		t.Errorf("Get(missing) err = %v, want ErrNotFound", err)
	}
}

func TestStoreKeyIsExactTuple(t *testing.T) {
	store := NewStore()
	key := Key{PolygonURL: "http://a/k.kml", SpreadsheetURL: "http://a/r.xlsx", PrefixLength: 8, Simplify: true}
	store.Put(&Dataset{ID: "id-1", Key: key})

	variants := []Key{
		{PolygonURL: key.PolygonURL, SpreadsheetURL: key.SpreadsheetURL, PrefixLength: 4, Simplify: true},
		{PolygonURL: key.PolygonURL, SpreadsheetURL: key.SpreadsheetURL, PrefixLength: 8, Simplify: false},
		{PolygonURL: "http://b/k.kml", SpreadsheetURL: key.SpreadsheetURL, PrefixLength: 8, Simplify: true},
	}
	for _, v := range variants {
		if _, ok := store.GetByKey(v); ok {
			t.Errorf("key %+v must not hit the cache entry for %+v", v, key)
		}
	}
}
