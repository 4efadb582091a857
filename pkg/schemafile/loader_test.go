package schemafile_test

import (
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-quoteform/pkg/constraint"
	"github.com/goliatone/go-quoteform/pkg/quote"
	"github.com/goliatone/go-quoteform/pkg/schema"
	"github.com/goliatone/go-quoteform/pkg/schemafile"
)

func TestLoadFS_QuoteDocumentsMatchDeclarations(t *testing.T) {
	store, err := schemafile.LoadFS(os.DirFS("testdata/quote"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	wantNames := []string{"customer", "glulam", "project", "request"}
	if diff := cmp.Diff(wantNames, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if got := store.Title("request"); got != "Glulam RFQ Form" {
		t.Fatalf("request title = %q", got)
	}

	for _, name := range quote.FormNames() {
		declared, _ := quote.Form(name)
		loaded, ok := store.Form(name)
		if !ok {
			t.Fatalf("form %q not loaded", name)
		}
		if diff := cmp.Diff(declared.Names(), loaded.Names()); diff != "" {
			t.Fatalf("%s: field order mismatch (-go +file):\n%s", name, diff)
		}
		for _, field := range declared.Fields() {
			got, _ := loaded.Field(field.Name)
			if !field.SameRules(got) {
				t.Errorf("%s.%s: rules differ between Go declaration and document", name, field.Name)
			}
			if field.Input != got.Input || field.Label != got.Label || field.Placeholder != got.Placeholder {
				t.Errorf("%s.%s: metadata differs: %+v vs %+v", name, field.Name, field, got)
			}
			if diff := cmp.Diff(field.Options, got.Options); diff != "" {
				t.Errorf("%s.%s: options mismatch (-go +file):\n%s", name, field.Name, diff)
			}
		}
	}
}

func TestLoadFS_LoadedFormValidates(t *testing.T) {
	store, err := schemafile.LoadFS(os.DirFS("testdata/quote"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	form, _ := store.Form("glulam")

	result := form.Validate(schema.Record{"applicationType": "Floor", "spanLength": "40 ft"})
	want := schema.FieldErrors{"beamDimensions": "Please select beam dimensions"}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_DraftCollisionFailsAtLoad(t *testing.T) {
	_, err := schemafile.LoadFS(os.DirFS("testdata/drafts"))
	if !errors.Is(err, schema.ErrFieldCollision) {
		t.Fatalf("expected ErrFieldCollision, got %v", err)
	}
}

func TestLoadFS_UnknownSection(t *testing.T) {
	_, err := schemafile.LoadFS(os.DirFS("testdata/unknown_section"))
	if !errors.Is(err, schemafile.ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection, got %v", err)
	}
}

func TestLoadFS_DuplicateAcrossFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("sections:\n  customer:\n    fields: [{name: email}]\n")},
		"b.json": {Data: []byte(`{"sections": {"customer": {"fields": [{"name": "phone"}]}}}`)},
	}
	_, err := schemafile.LoadFS(fsys)
	if !errors.Is(err, schemafile.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestLoadFS_IgnoresOtherFilesAndNil(t *testing.T) {
	fsys := fstest.MapFS{
		"README.md":     {Data: []byte("# forms")},
		"nested/x.yaml": {Data: []byte("sections:\n  x:\n    fields: [{name: a}]\n")},
	}
	store, err := schemafile.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := store.Form("x"); !ok {
		t.Fatalf("nested document not loaded")
	}

	empty, err := schemafile.LoadFS(nil)
	if err != nil || !empty.Empty() {
		t.Fatalf("nil fs should yield an empty store, got %v %v", empty, err)
	}
}

func TestLoad_RuleErrors(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
	}{
		"two kinds in one rule": {
			doc:  "sections:\n  s:\n    fields:\n      - name: a\n        rules: [{minLength: 1, maxLength: 2}]\n",
			want: schemafile.ErrInvalidRule,
		},
		"empty rule": {
			doc:  "sections:\n  s:\n    fields:\n      - name: a\n        rules: [{message: nothing}]\n",
			want: schemafile.ErrInvalidRule,
		},
		"bad pattern": {
			doc:  "sections:\n  s:\n    fields:\n      - name: a\n        rules: [{pattern: '('}]\n",
			want: constraint.ErrInvalidPattern,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := schemafile.Load([]byte(tc.doc), name)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLoad_EmptyDocument(t *testing.T) {
	if _, err := schemafile.Load([]byte("  \n"), "blank.yaml"); err == nil {
		t.Fatalf("expected empty document error")
	}
	if _, err := schemafile.Load([]byte("sections: [unclosed"), "broken.yaml"); err == nil {
		t.Fatalf("expected parse error")
	}
}
