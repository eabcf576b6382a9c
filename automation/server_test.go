package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bloodmagesoftware/motoed/engine"
	"github.com/bloodmagesoftware/motoed/level"
	"github.com/bloodmagesoftware/motoed/levelio"
	"github.com/bloodmagesoftware/motoed/store"
	"github.com/davecgh/go-spew/spew"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard, "", 0)
	s := store.New(level.New(), store.Options{Logger: logger})
	e := engine.New(s, engine.Options{Logger: logger})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = e.Serve(ctx)
	}()

	ts := httptest.NewServer(New(e, logger).Handler())
	t.Cleanup(func() {
		ts.Close()
		cancel()
		<-done
	})
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	return res, data
}

func summary(t *testing.T, ts *httptest.Server) levelio.Summary {
	t.Helper()
	res, data := call(t, ts, http.MethodGet, "/level", "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GET /level = %d %s", res.StatusCode, data)
	}
	var sum levelio.Summary
	if err := json.Unmarshal(data, &sum); err != nil {
		t.Fatalf("decoding summary: %v", err)
	}
	return sum
}

func TestStatusCodes(t *testing.T) {
	ts := newServer(t)
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "level", method: http.MethodGet, path: "/level", want: http.StatusOK},
		{name: "apples", method: http.MethodPost, path: "/apples", body: `[{"position":{"x":1,"y":2},"gravity":"up"}]`, want: http.StatusOK},
		{name: "unknown gravity", method: http.MethodPost, path: "/apples", body: `[{"position":{"x":1,"y":2},"gravity":"sideways"}]`, want: http.StatusBadRequest},
		{name: "killers", method: http.MethodPost, path: "/killers", body: `[{"x":5,"y":5}]`, want: http.StatusOK},
		{name: "broken json", method: http.MethodPost, path: "/killers", body: `[{"x":`, want: http.StatusBadRequest},
		{name: "unknown field", method: http.MethodPost, path: "/flowers", body: `[{"z":1}]`, want: http.StatusBadRequest},
		{name: "flowers", method: http.MethodPost, path: "/flowers", body: `[{"x":7,"y":7}]`, want: http.StatusOK},
		{name: "start", method: http.MethodPut, path: "/start", body: `{"x":3,"y":4}`, want: http.StatusNoContent},
		{name: "short polygon", method: http.MethodPost, path: "/polygons", body: `[{"vertices":[{"x":0,"y":0},{"x":1,"y":0}]}]`, want: http.StatusBadRequest},
		{name: "name", method: http.MethodPut, path: "/name", body: `{"name":"hill"}`, want: http.StatusNoContent},
		{name: "fit", method: http.MethodPost, path: "/fit", want: http.StatusNoContent},
		{name: "undo", method: http.MethodPost, path: "/undo", want: http.StatusOK},
		{name: "redo", method: http.MethodPost, path: "/redo", want: http.StatusOK},
		{name: "export", method: http.MethodGet, path: "/export", want: http.StatusOK},
		{name: "import garbage", method: http.MethodPost, path: "/import", body: "POT99", want: http.StatusBadRequest},
		{name: "wrong method", method: http.MethodGet, path: "/apples", want: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, data := call(t, ts, tt.method, tt.path, tt.body)
			if res.StatusCode != tt.want {
				t.Errorf("%s %s = %d %s, want %d", tt.method, tt.path, res.StatusCode, data, tt.want)
			}
		})
	}
}

func TestEditsShowInSummary(t *testing.T) {
	ts := newServer(t)
	before := summary(t, ts)

	res, data := call(t, ts, http.MethodPost, "/apples", `[{"position":{"x":1,"y":1}},{"position":{"x":2,"y":2},"animation":2}]`)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("POST /apples = %d %s", res.StatusCode, data)
	}
	var ids idsResponse[level.ObjectID]
	if err := json.Unmarshal(data, &ids); err != nil {
		t.Fatal(err)
	}
	if len(ids.IDs) != 2 || ids.IDs[0] == ids.IDs[1] {
		t.Errorf("ids = %v", ids.IDs)
	}

	call(t, ts, http.MethodPost, "/polygons", `[{"vertices":[{"x":10,"y":10},{"x":20,"y":10},{"x":20,"y":20}],"grass":true}]`)
	call(t, ts, http.MethodPut, "/start", `{"x":3,"y":4}`)
	call(t, ts, http.MethodPut, "/name", `{"name":"hill"}`)

	got := summary(t, ts)
	want := before
	want.Apples += 2
	want.Polygons++
	want.GrassPolygons++
	want.Vertices += 3
	want.Start = level.Position{X: 3, Y: 4}
	want.Name = "hill"
	if got != want {
		t.Errorf("summary mismatch:\n got %s\nwant %s", spew.Sdump(got), spew.Sdump(want))
	}
}

func TestUndoRedo(t *testing.T) {
	ts := newServer(t)
	call(t, ts, http.MethodPost, "/killers", `[{"x":5,"y":5}]`)

	_, data := call(t, ts, http.MethodPost, "/undo", "")
	if string(data) != `{"changed":true}` {
		t.Errorf("undo = %s", data)
	}
	if n := summary(t, ts).Killers; n != 0 {
		t.Errorf("killers after undo = %d, want 0", n)
	}
	_, data = call(t, ts, http.MethodPost, "/redo", "")
	if string(data) != `{"changed":true}` {
		t.Errorf("redo = %s", data)
	}
	if n := summary(t, ts).Killers; n != 1 {
		t.Errorf("killers after redo = %d, want 1", n)
	}
	_, data = call(t, ts, http.MethodPost, "/redo", "")
	if string(data) != `{"changed":false}` {
		t.Errorf("redo at the end = %s", data)
	}
}

func TestExportImport(t *testing.T) {
	ts := newServer(t)
	call(t, ts, http.MethodPut, "/name", `{"name":"hill"}`)
	call(t, ts, http.MethodPost, "/killers", `[{"x":5,"y":5}]`)

	res, data := call(t, ts, http.MethodGet, "/export", "")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("GET /export = %d %s", res.StatusCode, data)
	}
	if cd := res.Header.Get("Content-Disposition"); !strings.Contains(cd, `"hill.lev"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	lvl, err := levelio.Decode(data)
	if err != nil {
		t.Fatalf("exported level does not decode: %v", err)
	}
	if len(lvl.Killers) != 1 {
		t.Errorf("exported killers = %d, want 1", len(lvl.Killers))
	}

	other := newServer(t)
	req, err := http.NewRequest(http.MethodPost, other.URL+"/import", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	res, err = other.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("POST /import = %d", res.StatusCode)
	}
	if got := summary(t, other); got.Name != "hill" || got.Killers != 1 {
		t.Errorf("imported summary = %s", spew.Sdump(got))
	}
}

func TestExportWithoutPolygonsConflicts(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	lvl := level.Empty()
	e := engine.New(store.New(lvl, store.Options{Logger: logger}), engine.Options{Logger: logger})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go e.Serve(ctx)

	ts := httptest.NewServer(New(e, logger).Handler())
	defer ts.Close()
	res, data := call(t, ts, http.MethodGet, "/export", "")
	if res.StatusCode != http.StatusConflict {
		t.Errorf("GET /export = %d %s, want 409", res.StatusCode, data)
	}
}
