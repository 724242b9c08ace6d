package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"godrv/domain/randvar"
	"godrv/internal"
)

func newTestServer(t *testing.T) (*Service, *httptest.Server) {
	t.Helper()
	svc := NewService(internal.NewLogger(internal.LogLevelError))
	ts := httptest.NewServer(svc.Router())
	t.Cleanup(ts.Close)
	return svc, ts
}

func TestCreateAndSnapshot(t *testing.T) {
	_, ts := newTestServer(t)

	body := `{"name":"coin","outcomes":[0,1],"probabilities":[0.25,0.75]}`
	resp, err := http.Post(ts.URL+"/distributions", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, "coin", created.Name)

	snapResp, err := http.Get(ts.URL + "/distributions/" + created.ID)
	require.NoError(t, err)
	defer snapResp.Body.Close()
	require.Equal(t, http.StatusOK, snapResp.StatusCode)

	var snap []randvar.OutcomePoint
	require.NoError(t, json.NewDecoder(snapResp.Body).Decode(&snap))
	require.Len(t, snap, 2)
	require.Equal(t, float64(0), snap[0].Outcome)
	require.InDelta(t, 0.25, snap[0].Probability, 1e-9)
}

func TestCreateFromFamily(t *testing.T) {
	_, ts := newTestServer(t)

	body := `{"name":"b","family":"binomial","params":{"n":4,"p":0.5}}`
	resp, err := http.Post(ts.URL+"/distributions", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateRejectsInvalidConstruction(t *testing.T) {
	_, ts := newTestServer(t)

	body := `{"name":"broken","outcomes":[1,2],"probabilities":[0.9,0.9]}`
	resp, err := http.Post(ts.URL+"/distributions", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSummaryEndpoint(t *testing.T) {
	svc, ts := newTestServer(t)

	die, err := randvar.Uniform([]float64{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	id := svc.Register("die", die)

	resp, err := http.Get(ts.URL + "/distributions/" + id.String() + "/summary")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary struct {
		Name     string  `json:"name"`
		Outcomes int     `json:"outcomes"`
		Mean     float64 `json:"mean"`
		Variance float64 `json:"variance"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	require.Equal(t, "die", summary.Name)
	require.Equal(t, 6, summary.Outcomes)
	require.InDelta(t, 3.5, summary.Mean, 1e-9)
}

func TestUnknownDistribution(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/distributions/no-such-id")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReportServesHTML(t *testing.T) {
	svc, ts := newTestServer(t)

	die, err := randvar.Uniform([]float64{1, 2, 3})
	require.NoError(t, err)
	id := svc.Register("small-die", die)

	resp, err := http.Get(ts.URL + "/distributions/" + id.String() + "/report")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}
