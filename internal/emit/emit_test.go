package emit

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/docuforge/docuforge/internal/dialect"
	"github.com/docuforge/docuforge/internal/document"
	"github.com/docuforge/docuforge/internal/idgen"
	"github.com/docuforge/docuforge/internal/structure"
)

// newTestGen builds a Generator with a frozen clock and sequential ids so
// output is byte-comparable.
func newTestGen(t *testing.T, target dialect.Target) *Generator {
	t.Helper()
	g, err := New(target)
	if err != nil {
		t.Fatalf("New(%q): %v", target, err)
	}
	g.Clock = idgen.FixedClock{T: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)}
	g.IDs = &idgen.SequenceSource{}
	return g
}

func mustParse(t *testing.T, input string) document.Value {
	t.Helper()
	v, err := document.Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return v
}

func TestGenerateMongoNested(t *testing.T) {
	g := newTestGen(t, dialect.MongoDB)
	root := mustParse(t, `{"name": "Ann", "address": {"city": "London"}}`)

	code, err := g.Generate(root, structure.Nested, Options{Name: "users"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, want := range []string{
		"// MongoDB insert script",
		"// Target collection: users",
		"db.users.insertOne({",
		`"name": "Ann"`,
		`"city": "London"`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("output missing %q:\n%s", want, code)
		}
	}
}

func TestGenerateMongoInsertMany(t *testing.T) {
	g := newTestGen(t, dialect.MongoDB)
	root := mustParse(t, `[{"a": 1}, {"a": 2}]`)

	code, err := g.Generate(root, structure.Nested, Options{Name: "rows"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(code, "db.rows.insertMany([") {
		t.Errorf("output missing insertMany:\n%s", code)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	root := mustParse(t, `{"users": [{"name": "Ann"}, {"name": "Bob"}]}`)
	opts := Options{AddIDs: true, AddTimestamps: true, AddIndexes: true}

	first, err := newTestGen(t, dialect.MongoDB).Generate(root, structure.References, opts)
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	second, err := newTestGen(t, dialect.MongoDB).Generate(root, structure.References, opts)
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if first != second {
		t.Errorf("output not deterministic:\n--- first\n%s\n--- second\n%s", first, second)
	}
}

func TestGenerateNameResolution(t *testing.T) {
	// Explicit option wins.
	g := newTestGen(t, dialect.MongoDB)
	code, err := g.Generate(mustParse(t, `{"users": []}`), structure.Nested, Options{Name: "people"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(code, "db.people.") {
		t.Errorf("explicit name ignored:\n%s", code)
	}

	// First key of an object root.
	code, err = g.Generate(mustParse(t, `{"orders": 1, "extra": 2}`), structure.Nested, Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(code, "db.orders.") {
		t.Errorf("first-key name not used:\n%s", code)
	}

	// Backend default for an array root.
	code, err = g.Generate(mustParse(t, `[{"a": 1}]`), structure.Nested, Options{})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(code, "db.my_collection.") {
		t.Errorf("default name not used:\n%s", code)
	}
}

func TestGenerateScalarRootRejected(t *testing.T) {
	for _, target := range dialect.All() {
		g := newTestGen(t, target)
		_, err := g.Generate("not a document", structure.Nested, Options{})
		if !errors.Is(err, document.ErrInvalidInput) {
			t.Errorf("%s: err = %v, want ErrInvalidInput", target, err)
		}
	}
}

func TestGenerateUnknownPolicy(t *testing.T) {
	g := newTestGen(t, dialect.MongoDB)
	_, err := g.Generate(mustParse(t, `{"a": 1}`), structure.Policy("graph"), Options{})
	if !errors.Is(err, structure.ErrUnsupportedStructure) {
		t.Errorf("err = %v, want ErrUnsupportedStructure", err)
	}
}

func TestGenerateFlat(t *testing.T) {
	g := newTestGen(t, dialect.MongoDB)
	root := mustParse(t, `{"name": "Ann", "address": {"city": "London"}}`)

	code, err := g.Generate(root, structure.Flat, Options{Name: "users"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(code, `"address_city": "London"`) {
		t.Errorf("flattened key missing:\n%s", code)
	}
	if strings.Contains(code, `"address": {`) {
		t.Errorf("nested address survived flattening:\n%s", code)
	}
}

func TestGenerateFlatFirestoreSeparator(t *testing.T) {
	g := newTestGen(t, dialect.Firestore)
	root := mustParse(t, `{"address": {"city": "London"}}`)

	code, err := g.Generate(root, structure.Flat, Options{Name: "users"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(code, `"address.city": "London"`) {
		t.Errorf("dotted key missing:\n%s", code)
	}
}

func TestGenerateReferencesMongo(t *testing.T) {
	g := newTestGen(t, dialect.MongoDB)
	root := mustParse(t, `{"customer": "Ann", "order": {"sku": "x-1"}}`)

	code, err := g.Generate(root, structure.References, Options{Name: "sales"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, want := range []string{
		"db.sales.insertOne({",
		`"order_id": ObjectId("000000000000000000000001")`,
		"db.orders.insertOne({",
		`"_id": ObjectId("000000000000000000000001")`,
		`"sku": "x-1"`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("output missing %q:\n%s", want, code)
		}
	}
	if strings.Contains(code, `"order": {`) {
		t.Errorf("nested order survived extraction:\n%s", code)
	}
}

func TestGenerateAddIDsSkipsExisting(t *testing.T) {
	g := newTestGen(t, dialect.MongoDB)
	root := mustParse(t, `[{"_id": "keep-me", "a": 1}, {"a": 2}]`)

	code, err := g.Generate(root, structure.Nested, Options{Name: "rows", AddIDs: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(code, `"_id": "keep-me"`) {
		t.Errorf("existing id replaced:\n%s", code)
	}
	if !strings.Contains(code, `"_id": ObjectId("000000000000000000000001")`) {
		t.Errorf("missing id not injected:\n%s", code)
	}
}

func TestGenerateAddTimestamps(t *testing.T) {
	g := newTestGen(t, dialect.MongoDB)
	root := mustParse(t, `{"name": "Ann"}`)

	code, err := g.Generate(root, structure.Nested, Options{Name: "users", AddTimestamps: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := `"created_at": new Date("2024-01-15T10:30:00.000Z")`
	if !strings.Contains(code, want) {
		t.Errorf("output missing %q:\n%s", want, code)
	}
	if !strings.Contains(code, `"updated_at": new Date(`) {
		t.Errorf("updated_at missing:\n%s", code)
	}
}

func TestGenerateTimestampFieldNamesPerBackend(t *testing.T) {
	root := mustParse(t, `{"name": "Ann"}`)

	code, err := newTestGen(t, dialect.Firestore).Generate(root, structure.Nested, Options{AddTimestamps: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(code, `"createdAt": admin.firestore.Timestamp.fromDate(`) {
		t.Errorf("firestore timestamp missing:\n%s", code)
	}
}

func TestGenerateArrayWrappedItemIDs(t *testing.T) {
	g := newTestGen(t, dialect.MongoDB)
	root := mustParse(t, `[{"a": 1}, {"a": 2}]`)

	code, err := g.Generate(root, structure.ArrayWrapped, Options{Name: "batch", AddIDs: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Container id first, then one per item.
	for _, want := range []string{
		`"_id": ObjectId("000000000000000000000001")`,
		`"_id": ObjectId("000000000000000000000002")`,
		`"_id": ObjectId("000000000000000000000003")`,
		`"items": [`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("output missing %q:\n%s", want, code)
		}
	}
}

func TestGenerateIndexesIgnoreInjectedFields(t *testing.T) {
	g := newTestGen(t, dialect.MongoDB)
	root := mustParse(t, `{"user_id": 7, "notes": "x"}`)

	code, err := g.Generate(root, structure.Nested, Options{
		Name: "users", AddIDs: true, AddTimestamps: true, AddIndexes: true,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.Contains(code, "// Suggested indexes") {
		t.Fatalf("index section missing:\n%s", code)
	}
	if !strings.Contains(code, `db.users.createIndex({ "user_id": 1 });`) {
		t.Errorf("user_id index missing:\n%s", code)
	}
	// Suggestions run before injection, so synthesized fields never appear.
	if strings.Contains(code, `createIndex({ "_id"`) || strings.Contains(code, `createIndex({ "created_at"`) {
		t.Errorf("injected fields leaked into suggestions:\n%s", code)
	}
}

func TestGenerateIndexesCompound(t *testing.T) {
	g := newTestGen(t, dialect.MongoDB)
	root := mustParse(t, `{"user_id": 7, "email": "a@b.com"}`)

	code, err := g.Generate(root, structure.Nested, Options{Name: "users", AddIndexes: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(code, `db.users.createIndex({ "user_id": 1, "email": 1 });`) {
		t.Errorf("compound index missing:\n%s", code)
	}
}

func TestGenerateIndexesNoCandidates(t *testing.T) {
	g := newTestGen(t, dialect.MongoDB)
	root := mustParse(t, `{"notes": "x"}`)

	code, err := g.Generate(root, structure.Nested, Options{Name: "stuff", AddIndexes: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(code, "// No index candidates found.") {
		t.Errorf("empty-suggestion notice missing:\n%s", code)
	}
}

func TestGenerateDynamoBatchBoundary(t *testing.T) {
	docs := func(n int) document.Value {
		arr := document.Array{}
		for i := 0; i < n; i++ {
			o := document.NewObject()
			o.Set("n", document.Number(fmt.Sprintf("%d", i)))
			arr = append(arr, o)
		}
		return arr
	}

	g := newTestGen(t, dialect.DynamoDB)
	atLimit, err := g.Generate(docs(25), structure.Nested, Options{Name: "Rows"})
	if err != nil {
		t.Fatalf("Generate(25): %v", err)
	}
	if !strings.Contains(atLimit, "// Table: Rows (25 items, batch write)") {
		t.Errorf("25 items should batch:\n%s", atLimit)
	}
	if !strings.Contains(atLimit, "docClient.batchWrite(") {
		t.Errorf("batchWrite call missing:\n%s", atLimit)
	}

	overLimit, err := g.Generate(docs(26), structure.Nested, Options{Name: "Rows"})
	if err != nil {
		t.Fatalf("Generate(26): %v", err)
	}
	if !strings.Contains(overLimit, "exceeds the 25-item batch limit; per-item puts") {
		t.Errorf("26 items should fall back to puts:\n%s", overLimit)
	}
	if strings.Contains(overLimit, "docClient.batchWrite(") {
		t.Errorf("batchWrite present over limit:\n%s", overLimit)
	}
	if !strings.Contains(overLimit, "docClient.put({") {
		t.Errorf("per-item put missing:\n%s", overLimit)
	}
}

func TestGenerateFirestore(t *testing.T) {
	g := newTestGen(t, dialect.Firestore)
	root := mustParse(t, `{"name": "Ann"}`)

	code, err := g.Generate(root, structure.Nested, Options{Name: "users"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, want := range []string{
		`const admin = require("firebase-admin");`,
		"async function importData() {",
		`  await db.collection("users").add({`,
		"importData().catch(console.error);",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("output missing %q:\n%s", want, code)
		}
	}
}

func TestGenerateCouch(t *testing.T) {
	g := newTestGen(t, dialect.CouchDB)
	root := mustParse(t, `{"name": "Ann"}`)

	code, err := g.Generate(root, structure.Nested, Options{Name: "my-app.users"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, want := range []string{
		`const nano = require("nano")("http://localhost:5984");`,
		`const my_app_users_db = nano.db.use("my-app.users");`,
		"await my_app_users_db.bulk({",
	} {
		if !strings.Contains(code, want) {
			t.Errorf("output missing %q:\n%s", want, code)
		}
	}
}

func TestGenerateEmptyObjectAllBackends(t *testing.T) {
	for _, target := range dialect.All() {
		g := newTestGen(t, target)
		code, err := g.Generate(mustParse(t, `{}`), structure.Nested, Options{})
		if err != nil {
			t.Errorf("%s: %v", target, err)
			continue
		}
		if strings.Count(code, "{") != strings.Count(code, "}") {
			t.Errorf("%s: unbalanced braces:\n%s", target, code)
		}
	}
}

func TestGenerateDoesNotMutateInput(t *testing.T) {
	g := newTestGen(t, dialect.MongoDB)
	root := mustParse(t, `{"name": "Ann"}`)
	obj := root.(*document.Object)

	_, err := g.Generate(root, structure.Nested, Options{AddIDs: true, AddTimestamps: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if obj.Len() != 1 || obj.Has("_id") || obj.Has("created_at") {
		t.Errorf("input mutated: keys = %v", obj.Keys())
	}
}

func TestSuggest(t *testing.T) {
	g := newTestGen(t, dialect.MongoDB)
	root := mustParse(t, `{"user_id": 7, "email": "a@b.com", "notes": "x"}`)

	s, err := g.Suggest(root, structure.Nested)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(s.Fields) != 2 || s.Fields[0] != "user_id" || s.Fields[1] != "email" {
		t.Errorf("fields = %v", s.Fields)
	}
	if len(s.Compound) != 2 {
		t.Errorf("compound = %v", s.Compound)
	}
}

func TestSuggestFlatSeesJoinedKeys(t *testing.T) {
	g := newTestGen(t, dialect.MongoDB)
	root := mustParse(t, `{"meta": {"user_id": 7}}`)

	s, err := g.Suggest(root, structure.Flat)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(s.Fields) != 1 || s.Fields[0] != "meta_user_id" {
		t.Errorf("fields = %v, want [meta_user_id]", s.Fields)
	}
}

func TestSuggestEmptyArray(t *testing.T) {
	g := newTestGen(t, dialect.MongoDB)
	s, err := g.Suggest(mustParse(t, `[]`), structure.Nested)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if !s.Empty() {
		t.Errorf("suggestion = %v, want empty", s)
	}
}

func TestSuggestScalarRoot(t *testing.T) {
	g := newTestGen(t, dialect.MongoDB)
	if _, err := g.Suggest(true, structure.Nested); !errors.Is(err, document.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}
