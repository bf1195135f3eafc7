package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_Simple(t *testing.T) {
	idx := NewIndex("cardex_cars_idx").
		Prefix("cardex:car:").
		Tag("brand").
		Numeric("year").
		MustBuild()

	if err := idx.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Name != "cardex_cars_idx" {
		t.Errorf("name = %q, want cardex_cars_idx", idx.Name)
	}
	if len(idx.Fields) != 2 {
		t.Fatalf("fields count = %d, want 2", len(idx.Fields))
	}
	if idx.Fields[0].Name != "brand" || idx.Fields[0].Type != IndexFieldTag {
		t.Errorf("field[0] = %+v, want brand TAG", idx.Fields[0])
	}
	if idx.Fields[1].Name != "year" || idx.Fields[1].Type != IndexFieldNumeric {
		t.Errorf("field[1] = %+v, want year NUMERIC", idx.Fields[1])
	}
}

func TestIndexBuilder_Sortable(t *testing.T) {
	idx := NewIndex("cardex_cars_idx").
		Prefix("cardex:car:").
		Text("name").
		TagSortable("sort_key").
		MustBuild()

	if idx.Fields[0].Sortable {
		t.Error("name should not be sortable")
	}
	f := idx.Fields[1]
	if f.Type != IndexFieldTag {
		t.Errorf("type = %v, want TAG", f.Type)
	}
	if !f.Sortable {
		t.Error("expected Sortable=true")
	}
}

func TestIndexBuilder_TextSortable(t *testing.T) {
	idx := NewIndex("cardex_brands_idx").
		Prefix("cardex:brand:").
		TextSortable("name").
		MustBuild()

	f := idx.Fields[0]
	if f.Type != IndexFieldText {
		t.Errorf("type = %v, want TEXT", f.Type)
	}
	if !f.Sortable {
		t.Error("expected Sortable=true")
	}
}

func TestIndexBuilder_TagOptions(t *testing.T) {
	idx := NewIndex("cardex_cars_idx").
		Prefix("cardex:car:").
		TagWithOpts("fuel_types", ",", false).
		MustBuild()

	f := idx.Fields[0]
	if f.TagSeparator != "," {
		t.Errorf("separator = %q, want ,", f.TagSeparator)
	}
	if f.TagCaseSensitive {
		t.Error("expected TagCaseSensitive=false")
	}
}

func TestIndexBuilder_MultiplePrefixes(t *testing.T) {
	idx := NewIndex("multi_idx").
		Prefix("a:", "b:", "c:").
		Tag("x").
		MustBuild()

	if len(idx.Prefixes) != 3 {
		t.Errorf("prefix count = %d, want 3", len(idx.Prefixes))
	}
}

func TestIndexBuilder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		builder func() (*IndexDefinition, error)
		wantErr string
	}{
		{
			name: "empty name",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("").Tag("x").Build()
			},
			wantErr: "index name is required",
		},
		{
			name: "no fields",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Build()
			},
			wantErr: "at least one field",
		},
		{
			name: "invalid characters",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx with spaces").Tag("x").Build()
			},
			wantErr: "invalid characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestIndexDefinition_String(t *testing.T) {
	idx := NewIndex("cardex_cars_idx").
		Prefix("cardex:car:").
		Text("name").
		TagSortable("sort_key").
		MustBuild()

	s := idx.String()
	if !strings.HasPrefix(s, "FT.CREATE ") {
		t.Errorf("expected FT.CREATE prefix, got %q", s)
	}
	if !strings.Contains(s, "cardex_cars_idx") {
		t.Error("missing index name in string output")
	}
	if !strings.Contains(s, "SORTABLE") {
		t.Error("missing SORTABLE in string output")
	}
}

func TestIndexBuilder_Alias(t *testing.T) {
	idx := &IndexDefinition{
		Name:     "alias_idx",
		Prefixes: []string{"a:"},
		Fields: []IndexField{
			{Name: "brand_slug", Alias: "brand", Type: IndexFieldTag},
		},
	}

	if err := idx.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Fields[0].Alias != "brand" {
		t.Errorf("alias = %q, want brand", idx.Fields[0].Alias)
	}
}

func TestIndexBuilder_DuplicateFields(t *testing.T) {
	idx := &IndexDefinition{
		Name: "dup_idx",
		Fields: []IndexField{
			{Name: "field1", Type: IndexFieldTag},
			{Name: "field1", Type: IndexFieldNumeric},
		},
	}

	if err := idx.Validate(); err == nil {
		t.Fatal("expected error for duplicate fields")
	}
}
