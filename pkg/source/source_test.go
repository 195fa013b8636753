package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/stackbar/pkg/errors"
)

func TestKindOf(t *testing.T) {
	tests := map[string]Kind{
		"-":                          KindStdin,
		"sales.csv":                  KindFile,
		"./http-data.json":           KindFile,
		"http://x/y.csv":             KindHTTP,
		"https://x/y":                KindHTTP,
		"mongodb://localhost/db/c":   KindMongo,
		"mongodb+srv://cluster/db/c": KindMongo,
	}
	for ref, want := range tests {
		if got := KindOf(ref); got != want {
			t.Errorf("KindOf(%q) = %s, want %s", ref, got, want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sales.csv")
	if err := os.WriteFile(path, []byte("series,Q1,Q2\nA,1,2\nB,3,\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := (&Loader{}).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.RowCount() != 2 || tbl.ColumnCount() != 2 {
		t.Errorf("table is %dx%d", tbl.RowCount(), tbl.ColumnCount())
	}
	if _, ok := tbl.Value(1, 1); ok {
		t.Error("empty cell should be absent")
	}

	noext := filepath.Join(dir, "sales")
	if err := os.WriteFile(noext, []byte("series,Q1\nA,1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := (&Loader{Format: "csv"}).Load(context.Background(), noext); err != nil {
		t.Errorf("forced csv: %v", err)
	}
	if _, err := (&Loader{Format: "csv"}).Load(context.Background(), filepath.Join(dir, "nope")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v", err)
	}
}

func TestLoadStdin(t *testing.T) {
	l := &Loader{Stdin: strings.NewReader(`{"series":["A"],"categories":["Q1"],"values":[[5]]}`)}
	tbl, err := l.Load(context.Background(), "-")
	if err != nil {
		t.Fatalf("Load(-): %v", err)
	}
	if v, _ := tbl.Value(0, 0); v != 5 {
		t.Errorf("Value = %v", v)
	}
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("series,Q1\nA,7\n"))
	}))
	defer srv.Close()

	tbl, err := (&Loader{}).Load(context.Background(), srv.URL+"/sales.csv")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if v, _ := tbl.Value(0, 0); v != 7 {
		t.Errorf("Value = %v", v)
	}
}

func TestLoadEmptyRef(t *testing.T) {
	if _, err := (&Loader{}).Load(context.Background(), ""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v", err)
	}
}

func TestParseMongoRef(t *testing.T) {
	r, err := ParseMongoRef("mongodb://user:pw@localhost:27017/shop/sales?authSource=admin")
	if err != nil {
		t.Fatalf("ParseMongoRef: %v", err)
	}
	if r.Database != "shop" || r.Collection != "sales" {
		t.Errorf("ref = %+v", r)
	}
	if r.URI != "mongodb://user:pw@localhost:27017/?authSource=admin" {
		t.Errorf("URI = %s", r.URI)
	}

	for _, bad := range []string{"mongodb://localhost", "mongodb://localhost/shop", "mongodb://localhost/a/b/c"} {
		if _, err := ParseMongoRef(bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ParseMongoRef(%q) err = %v", bad, err)
		}
	}
}

type fakeCollection struct {
	docs []interface{}
}

func (f fakeCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	return mongo.NewCursorFromDocuments(f.docs, nil, nil)
}

func TestLoadCollection(t *testing.T) {
	coll := fakeCollection{docs: []interface{}{
		bson.D{{Key: "series", Value: "Apples"}, {Key: "category", Value: "Q1"}, {Key: "value", Value: 1.5}},
		bson.D{{Key: "series", Value: "Pears"}, {Key: "category", Value: "Q1"}, {Key: "value", Value: int32(4)}},
		bson.D{{Key: "series", Value: "Apples"}, {Key: "category", Value: "Q2"}, {Key: "value", Value: nil}},
		bson.D{{Key: "series", Value: "Pears"}, {Key: "category", Value: "Q2"}, {Key: "value", Value: -2.0}},
	}}

	tbl, err := LoadCollection(context.Background(), coll, bson.D{})
	if err != nil {
		t.Fatalf("LoadCollection: %v", err)
	}
	if got := strings.Join(tbl.RowKeys(), ","); got != "Apples,Pears" {
		t.Errorf("rows = %s", got)
	}
	if got := strings.Join(tbl.ColumnKeys(), ","); got != "Q1,Q2" {
		t.Errorf("columns = %s", got)
	}
	if v, ok := tbl.Value(1, 0); !ok || v != 4 {
		t.Errorf("Pears/Q1 = %v, %v", v, ok)
	}
	if _, ok := tbl.Value(0, 1); ok {
		t.Error("null value should be absent")
	}
}

func TestLoadCollectionRejectsIncompleteRecords(t *testing.T) {
	coll := fakeCollection{docs: []interface{}{
		bson.D{{Key: "category", Value: "Q1"}, {Key: "value", Value: 1.0}},
	}}
	if _, err := LoadCollection(context.Background(), coll, bson.D{}); !errors.Is(err, errors.ErrCodeInvalidDataset) {
		t.Errorf("err = %v", err)
	}
}
