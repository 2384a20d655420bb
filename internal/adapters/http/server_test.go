package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mosaic"
	httpAdapter "github.com/aretw0/mosaic/internal/adapters/http"
	"github.com/aretw0/mosaic/internal/logging"
	"github.com/aretw0/mosaic/pkg/domain"
	"github.com/aretw0/mosaic/pkg/ports"
	"github.com/aretw0/mosaic/pkg/schema"
)

type treeResponse struct {
	Tree    *domain.Node `json:"tree"`
	CanUndo bool         `json:"can_undo"`
	CanRedo bool         `json:"can_redo"`
}

func newTestHandler(t *testing.T, opts ...mosaic.Option) (http.Handler, *mosaic.Engine) {
	t.Helper()
	engine, err := mosaic.New(append([]mosaic.Option{mosaic.WithLogger(logging.NewNop())}, opts...)...)
	require.NoError(t, err)
	return httpAdapter.NewHandler(engine, logging.NewNop(), nil), engine
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("{}")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeTree(t *testing.T, rec *httptest.ResponseRecorder) treeResponse {
	t.Helper()
	var resp treeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Tree)
	return resp
}

func TestHealthz(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestTreeEndpoints(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(t, h, http.MethodGet, "/tree", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeTree(t, rec)
	rootID := resp.Tree.ID
	assert.Equal(t, domain.KindContainer, resp.Tree.Kind)
	assert.False(t, resp.CanUndo)

	rec = do(t, h, http.MethodPost, "/tree/nodes", fmt.Sprintf(`{"parent_id":%q}`, rootID))
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeTree(t, rec)
	require.Len(t, resp.Tree.Children, 1)
	assert.True(t, resp.CanUndo)
	childID := resp.Tree.Children[0].ID

	t.Run("ReplaceNode", func(t *testing.T) {
		replacement, err := schema.Encode(&domain.Node{
			ID:         childID,
			Kind:       domain.KindView,
			Properties: map[string]any{"view": "table"},
		})
		require.NoError(t, err)

		rec := do(t, h, http.MethodPut, "/tree/nodes/"+childID, replacement)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeTree(t, rec)
		require.Len(t, resp.Tree.Children, 1)
		assert.Equal(t, domain.KindView, resp.Tree.Children[0].Kind)
	})

	t.Run("ReplaceNodeRejectsMalformedDocument", func(t *testing.T) {
		rec := do(t, h, http.MethodPut, "/tree/nodes/"+childID, `{"kind":"view"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("RemoveNode", func(t *testing.T) {
		rec := do(t, h, http.MethodDelete, "/tree/nodes/"+childID, "")
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeTree(t, rec)
		assert.Empty(t, resp.Tree.Children)
	})
}

func TestHistoryEndpoints(t *testing.T) {
	h, engine := newTestHandler(t)

	root, err := engine.CurrentTree()
	require.NoError(t, err)
	_, err = engine.AddChild(root.ID)
	require.NoError(t, err)

	rec := do(t, h, http.MethodPost, "/history/undo", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"moved":true`)

	rec = do(t, h, http.MethodPost, "/history/undo", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"moved":false`)

	rec = do(t, h, http.MethodPost, "/history/redo", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"moved":true`)

	t.Run("Jump", func(t *testing.T) {
		rootSnap := engine.History().Root()
		rec := do(t, h, http.MethodPost, "/history/jump", fmt.Sprintf(`{"id":%d}`, rootSnap.ID))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, rootSnap.ID, engine.History().Current().ID)
	})

	t.Run("JumpUnknownID", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/history/jump", `{"id":999}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("LayoutJSON", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/history", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var payload struct {
			Positions map[string]any `json:"positions"`
			Bounds    map[string]any `json:"bounds"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Len(t, payload.Positions, 2)
	})

	t.Run("Mermaid", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/history/mermaid", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "graph LR")
	})
}

func TestExportImportEndpoints(t *testing.T) {
	h, engine := newTestHandler(t)

	root, err := engine.CurrentTree()
	require.NoError(t, err)
	_, err = engine.AddChild(root.ID)
	require.NoError(t, err)

	rec := do(t, h, http.MethodGet, "/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := rec.Body.String()
	assert.Equal(t, engine.ExportJSON(), doc)

	h2, engine2 := newTestHandler(t)
	rec = do(t, h2, http.MethodPost, "/import", doc)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, doc, engine2.ExportJSON())

	t.Run("MalformedImport", func(t *testing.T) {
		rec := do(t, h2, http.MethodPost, "/import", `{"kind":"container"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDataEndpoint(t *testing.T) {
	fetcher := ports.FetcherFunc(func(ctx context.Context, key string) ([]domain.Record, error) {
		if key == "down" {
			return nil, &domain.FetchError{Key: key, StatusCode: http.StatusServiceUnavailable}
		}
		return []domain.Record{
			{"name": "north", "level": 1.0},
			{"name": "south", "level": 5.0},
		}, nil
	})
	h, _ := newTestHandler(t, mosaic.WithFetcher(fetcher))

	rec := do(t, h, http.MethodGet, "/data/stations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Key     string          `json:"key"`
		Records []domain.Record `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "stations", payload.Key)
	assert.Len(t, payload.Records, 2)

	t.Run("WithFilters", func(t *testing.T) {
		filters := `[{"column":"level","op":"greaterThan","value":2}]`
		rec := do(t, h, http.MethodGet, "/data/stations?filters="+url.QueryEscape(filters), "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		require.Len(t, payload.Records, 1)
		assert.Equal(t, "south", payload.Records[0]["name"])
	})

	t.Run("InvalidFilters", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/data/stations?filters=notjson", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UpstreamFailureIsBadGateway", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/data/down", "")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("NoFetcherIsServerError", func(t *testing.T) {
		bare, _ := newTestHandler(t)
		rec := do(t, bare, http.MethodGet, "/data/stations", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
