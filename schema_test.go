package carquet

import (
	"testing"

	"github.com/Vitruves/carquet-sub000/format"
)

func buildTestSchema() *Schema {
	root := &Schema{Name: "root"}
	id := &Schema{Name: "id", Type: Int64, Repetition: format.Required}
	name := &Schema{Name: "name", Type: ByteArray, Repetition: format.Optional, LogicalType: LogicalType{Kind: StringType}}
	tags := &Schema{Name: "tags", Type: ByteArray, Repetition: format.Repeated, LogicalType: LogicalType{Kind: StringType}}
	root.Add(id)
	root.Add(name)
	root.Add(tags)
	root.Compute()
	return root
}

func TestSchemaComputeLevels(t *testing.T) {
	root := buildTestSchema()
	leaves := root.Leaves()
	if len(leaves) != 3 {
		t.Fatalf("expected 3 leaves, got %d", len(leaves))
	}
	if leaves[0].MaxDefinitionLevel != 0 || leaves[0].MaxRepetitionLevel != 0 {
		t.Errorf("required column id: got def=%d rep=%d", leaves[0].MaxDefinitionLevel, leaves[0].MaxRepetitionLevel)
	}
	if leaves[1].MaxDefinitionLevel != 1 || leaves[1].MaxRepetitionLevel != 0 {
		t.Errorf("optional column name: got def=%d rep=%d", leaves[1].MaxDefinitionLevel, leaves[1].MaxRepetitionLevel)
	}
	if leaves[2].MaxDefinitionLevel != 1 || leaves[2].MaxRepetitionLevel != 1 {
		t.Errorf("repeated column tags: got def=%d rep=%d", leaves[2].MaxDefinitionLevel, leaves[2].MaxRepetitionLevel)
	}
	if got := leaves[1].String(); got != "name" {
		t.Errorf("path: got %q, want %q", got, "name")
	}
}

func TestSchemaAtLookup(t *testing.T) {
	root := buildTestSchema()
	if root.At("name") == nil {
		t.Fatal("expected to find name")
	}
	if root.At("missing") != nil {
		t.Fatal("expected nil for missing child")
	}
}

func TestSchemaElementsRoundTrip(t *testing.T) {
	root := buildTestSchema()
	elements := schemaToElements(root)

	rebuilt, err := schemaFromElements(elements)
	if err != nil {
		t.Fatal(err)
	}

	wantLeaves := root.Leaves()
	gotLeaves := rebuilt.Leaves()
	if len(wantLeaves) != len(gotLeaves) {
		t.Fatalf("leaf count mismatch: %d != %d", len(wantLeaves), len(gotLeaves))
	}
	for i := range wantLeaves {
		w, g := wantLeaves[i], gotLeaves[i]
		if w.Name != g.Name || w.Type != g.Type || w.Repetition != g.Repetition {
			t.Errorf("leaf %d mismatch: %+v != %+v", i, w, g)
		}
		if w.MaxDefinitionLevel != g.MaxDefinitionLevel || w.MaxRepetitionLevel != g.MaxRepetitionLevel {
			t.Errorf("leaf %d level mismatch", i)
		}
		if w.LogicalType.Kind != g.LogicalType.Kind {
			t.Errorf("leaf %d logical type mismatch: %v != %v", i, w.LogicalType.Kind, g.LogicalType.Kind)
		}
	}
}

func TestSchemaFromElementsEmpty(t *testing.T) {
	if _, err := schemaFromElements(nil); err == nil {
		t.Fatal("expected an error for an empty schema element list")
	}
}
