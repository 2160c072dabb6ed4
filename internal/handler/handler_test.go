package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/parisxmas/sitesurvey/internal/models"
	"github.com/parisxmas/sitesurvey/internal/repository"
	"github.com/parisxmas/sitesurvey/internal/service"
)

type fixture struct {
	store *repository.SheetRepo
	page  *PageHandler
	subs  *SubmissionHandler
	dash  *DashboardHandler
	form  *FormHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zaptest.NewLogger(t)
	store := repository.NewSheetRepo(filepath.Join(t.TempDir(), "results.xlsx"), log)
	formSvc := service.NewFormService()
	subSvc := service.NewSubmissionService(store, log)
	sumSvc := service.NewSummaryService(store)
	return &fixture{
		store: store,
		page:  NewPageHandler(store, formSvc, subSvc, sumSvc, log),
		subs:  NewSubmissionHandler(subSvc, formSvc, log),
		dash:  NewDashboardHandler(sumSvc, log),
		form:  NewFormHandler(formSvc),
	}
}

func postForm(h http.HandlerFunc, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func surveyValues(quality string) url.Values {
	return url.Values{
		"projectName":        {"Bridge A"},
		"location":           {"North Yard"},
		"workType":           {"Construction"},
		"durationMonths":     {"6"},
		"materialQuality":    {quality},
		"deadlineCompliance": {"Yes"},
		"siteSafety":         {"Good"},
		"siteCleanliness":    {"Good"},
		"comments":           {""},
	}
}

func TestShowEmptyStore(t *testing.T) {
	f := newFixture(t)
	w := httptest.NewRecorder()
	f.page.Show(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Civil Engineering Survey")
	assert.Contains(t, body, `name="projectName"`)
	assert.Contains(t, body, `<option value="Bridges/Roads">`)
	assert.Contains(t, body, `min="1" max="120"`)
	assert.Contains(t, body, `maxlength="32767"`)
	assert.Contains(t, body, "No data yet.")
	assert.NotContains(t, body, "data:image/png")

	// The page creates the store on first load.
	tbl, err := f.store.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Columns(), tbl.Columns)
}

func TestSubmitSuccess(t *testing.T) {
	f := newFixture(t)
	w := postForm(f.page.Submit, surveyValues("Satisfactory"))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, service.MsgSubmitted)
	assert.Contains(t, body, "data:image/png;base64,")
	assert.Contains(t, body, "Satisfactory (1)")
	assert.NotContains(t, body, "No data yet.")

	tbl := f.store.Load(context.Background())
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "Bridge A", tbl.Rows[0].ProjectName)
	assert.Equal(t, 6, tbl.Rows[0].DurationMonths)
}

func TestSubmitMissingRequired(t *testing.T) {
	f := newFixture(t)
	v := surveyValues("Average")
	v.Set("location", " ")
	v.Set("comments", "keep me")
	w := postForm(f.page.Submit, v)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, service.MsgRequired)
	assert.Contains(t, body, "keep me")
	assert.Contains(t, body, `<option value="Average" selected>`)
	assert.Equal(t, 0, f.store.Count(context.Background()))
}

func TestSubmitUnstorableComment(t *testing.T) {
	f := newFixture(t)
	for _, comment := range []string{strings.Repeat("x", 40000), "a\x01b", "a\xffb"} {
		v := surveyValues("Average")
		v.Set("comments", comment)
		w := postForm(f.page.Submit, v)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), service.MsgInvalid)
	}
	assert.Equal(t, 0, f.store.Count(context.Background()))
}

type brokenStore struct{}

func (brokenStore) EnsureExists(context.Context) error {
	return &repository.WriteError{Path: "results.xlsx", Err: errors.New("read-only file system")}
}

func TestShowStoreFailure(t *testing.T) {
	f := newFixture(t)
	f.page.store = brokenStore{}
	w := httptest.NewRecorder()
	f.page.Show(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "read-only file system")
}

func TestCreateJSON(t *testing.T) {
	f := newFixture(t)
	body := `{"projectName":"Bridge A","location":"North Yard","workType":"Construction","durationMonths":6,
		"materialQuality":"Satisfactory","deadlineCompliance":"Yes","siteSafety":"Good","siteCleanliness":"Good","comments":""}`
	w := httptest.NewRecorder()
	f.subs.Create(w, httptest.NewRequest(http.MethodPost, "/api/v1/submissions", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	f.subs.List(w, httptest.NewRequest(http.MethodGet, "/api/v1/submissions?limit=5", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Submissions []models.Record `json:"submissions"`
		Total       int             `json:"total"`
		Limit       int             `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 5, resp.Limit)
	require.Len(t, resp.Submissions, 1)
	assert.Equal(t, "North Yard", resp.Submissions[0].Location)
}

func TestCreateJSONValidation(t *testing.T) {
	f := newFixture(t)
	w := httptest.NewRecorder()
	f.subs.Create(w, httptest.NewRequest(http.MethodPost, "/api/v1/submissions", strings.NewReader(`{"projectName":""}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), models.ColProjectName)
	assert.Equal(t, 0, f.store.Count(context.Background()))

	w = httptest.NewRecorder()
	f.subs.Create(w, httptest.NewRequest(http.MethodPost, "/api/v1/submissions", strings.NewReader(`not json`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateJSONUnstorableText(t *testing.T) {
	f := newFixture(t)
	body := `{"projectName":"Bridge A","location":"North\u0007Yard","comments":"` + strings.Repeat("x", 40000) + `"}`
	w := httptest.NewRecorder()
	f.subs.Create(w, httptest.NewRequest(http.MethodPost, "/api/v1/submissions", strings.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error   string   `json:"error"`
		Invalid []string `json:"invalid"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, service.MsgInvalid, resp.Error)
	assert.Equal(t, []string{models.ColLocation, models.ColComments}, resp.Invalid)
	assert.Equal(t, 0, f.store.Count(context.Background()))
}

func TestSummaryAndChart(t *testing.T) {
	f := newFixture(t)
	for _, q := range []string{"Satisfactory", "Average", "Satisfactory"} {
		require.Equal(t, http.StatusOK, postForm(f.page.Submit, surveyValues(q)).Code)
	}

	w := httptest.NewRecorder()
	f.dash.Summary(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Summary models.Summary `json:"summary"`
		XLabel  string         `json:"xLabel"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Quality level", resp.XLabel)
	assert.Equal(t, map[string]int{"Satisfactory": 2, "Average": 1}, resp.Summary.AsMap())

	w = httptest.NewRecorder()
	f.dash.Chart(w, httptest.NewRequest(http.MethodGet, "/chart.png", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w = httptest.NewRecorder()
	f.dash.Summary(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary?field=comments", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChartNoData(t *testing.T) {
	f := newFixture(t)
	w := httptest.NewRecorder()
	f.dash.Chart(w, httptest.NewRequest(http.MethodGet, "/chart.png", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardAndForm(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusOK, postForm(f.page.Submit, surveyValues("Average")).Code)

	w := httptest.NewRecorder()
	f.dash.Dashboard(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var d service.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, 1, d.Total)
	assert.Equal(t, 1, d.Summaries[models.ColMaterialQuality].AsMap()["Average"])

	w = httptest.NewRecorder()
	f.form.Get(w, httptest.NewRequest(http.MethodGet, "/api/v1/form", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var form models.Form
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &form))
	assert.Len(t, form.Fields, 9)
}
