package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/msilver727/pharmcat/internal/catalog"
	"github.com/msilver727/pharmcat/internal/result"
)

func testGene(t *testing.T) *catalog.GeneDefinition {
	t.Helper()
	loci := []*catalog.VariantLocus{
		{Chrom: "10", Position: 100, Ref: "A", Alts: []string{"G"}, RSID: "rs1"},
	}
	g := &catalog.GeneDefinition{
		Gene: "TEST",
		Loci: loci,
		Alleles: []*catalog.NamedAllele{
			{ID: "*1", Name: "*1", AlleleCodes: []string{"A"}, Reference: true},
			{ID: "*2", Name: "*2", AlleleCodes: []string{"G"}},
		},
	}
	require.NoError(t, g.Initialize())
	return g
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New([]*catalog.GeneDefinition{testGene(t)}, result.Options{}, 8, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestHandleHealth_ReturnsOK(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleMatch_UnknownGeneReturnsNotFound(t *testing.T) {
	s := newTestServer(t)
	body := bytes.NewBufferString(`{"gene":"NOPE","records":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/match", body)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleMatch_MalformedBodyReturnsBadRequest(t *testing.T) {
	s := newTestServer(t)
	body := bytes.NewBufferString(`not json`)
	req := httptest.NewRequest(http.MethodPost, "/v1/match", body)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleMatch_ValidRequestCachesResponse(t *testing.T) {
	s := newTestServer(t)
	reqBody := `{"gene":"TEST","records":[{"Chrom":"10","Position":100,"Ref":"A","Alts":["G"],"GT":"0/0"}]}`

	req1 := httptest.NewRequest(http.MethodPost, "/v1/match", bytes.NewBufferString(reqBody))
	w1 := httptest.NewRecorder()
	s.ServeHTTP(w1, req1)
	require.Equal(t, http.StatusOK, w1.Code)

	assert.Equal(t, 1, s.cache.Len())

	req2 := httptest.NewRequest(http.MethodPost, "/v1/match", bytes.NewBufferString(reqBody))
	w2 := httptest.NewRecorder()
	s.ServeHTTP(w2, req2)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, w1.Body.String(), w2.Body.String())
}
