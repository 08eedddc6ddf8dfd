package postgres

import "testing"

func TestUnmarshalEntitiesMalformedFallsBackToEmpty(t *testing.T) {
	for _, raw := range []string{"", "not-json", `"just a string"`, "null", `[1,2,3]`} {
		entities := unmarshalEntities([]byte(raw))
		if entities == nil || len(entities) != 0 {
			t.Fatalf("input %q: expected empty mapping, got %v", raw, entities)
		}
	}
}

func TestUnmarshalEntitiesValid(t *testing.T) {
	entities := unmarshalEntities([]byte(`{"product":"website","budget":null}`))
	if entities["product"] != "website" {
		t.Fatalf("unexpected entities: %v", entities)
	}
	if value, ok := entities["budget"]; !ok || value != nil {
		t.Fatalf("expected explicit nil budget, got %v (present=%v)", value, ok)
	}
}

func TestMarshalEntitiesNil(t *testing.T) {
	raw, err := marshalEntities(nil)
	if err != nil {
		t.Fatalf("marshalEntities err: %v", err)
	}
	if string(raw) != "{}" {
		t.Fatalf("expected empty object, got %s", raw)
	}
}
