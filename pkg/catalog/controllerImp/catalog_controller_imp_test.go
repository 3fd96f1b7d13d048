package controllerImp

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conductor/database"
	"conductor/entities"
	"conductor/pkg/catalog/repositoryImp"
	"conductor/pkg/catalog/serviceImp"
)

const cropCSV = "id,name,frequency,role,category,spacing_in\nsquash,Squash,528,root,annual,24\nbean,Bean,528,third,annual,6\n"

func newCtrl(t *testing.T, allow ...string) *CatalogCtrl {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	return New(serviceImp.New(repositoryImp.New(db), nil), allow, 0, nil)
}

func upload(t *testing.T, name, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, "/crops/import", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestImportThenList(t *testing.T) {
	h := newCtrl(t)
	e := echo.New()

	rec := httptest.NewRecorder()
	require.NoError(t, h.Import(e.NewContext(upload(t, "crops.csv", cropCSV), rec)))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"imported":2`)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/crops?frequency=528&role=third", nil)
	require.NoError(t, h.List(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	var crops []entities.Crop
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &crops))
	require.Len(t, crops, 1)
	assert.Equal(t, "bean", crops[0].CropID)
}

func TestImportRejectsUnknownFormat(t *testing.T) {
	h := newCtrl(t)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Import(echo.New().NewContext(upload(t, "crops.txt", "x"), rec)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListRejectsBadFilter(t *testing.T) {
	h := newCtrl(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/crops?role=bass", nil)
	require.NoError(t, h.List(echo.New().NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func importURL(t *testing.T, h *CatalogCtrl, target string) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"url":"` + target + `"}`
	req := httptest.NewRequest(http.MethodPost, "/crops/import/url", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.ImportURL(echo.New().NewContext(req, rec)))
	return rec
}

func TestImportURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<table><tr><th>Name</th><th>Frequency</th><th>Role</th><th>Category</th><th>Spacing</th></tr>
<tr><td>Corn</td><td>528</td><td>fifth</td><td>annual</td><td>12</td></tr></table>`))
	}))
	defer srv.Close()
	u, _ := url.Parse(srv.URL)

	rec := importURL(t, newCtrl(t), srv.URL)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = importURL(t, newCtrl(t, u.Host), srv.URL)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"imported":1`)
}

func TestImportURLTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write(bytes.Repeat([]byte("a"), 64))
	}))
	defer srv.Close()
	u, _ := url.Parse(srv.URL)

	h := newCtrl(t, u.Host)
	h.maxBytes = 16
	rec := importURL(t, h, srv.URL)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestImportURLRedirectLeavesAllowList(t *testing.T) {
	var hits int
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<table><tr><th>Name</th><th>Frequency</th><th>Role</th><th>Category</th></tr>
<tr><td>Corn</td><td>528</td><td>fifth</td><td>annual</td></tr></table>`))
	}))
	defer other.Close()
	allowed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, other.URL, http.StatusFound)
	}))
	defer allowed.Close()
	u, _ := url.Parse(allowed.URL)

	rec := importURL(t, newCtrl(t, u.Host), allowed.URL)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "not allowed")
	assert.Zero(t, hits)
}

func TestImportURLRedirectWithinAllowList(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/crops", http.StatusMovedPermanently)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<table><tr><th>Name</th><th>Frequency</th><th>Role</th><th>Category</th></tr>
<tr><td>Corn</td><td>528</td><td>fifth</td><td>annual</td></tr></table>`))
	}))
	defer target.Close()
	u, _ := url.Parse(target.URL)

	rec := importURL(t, newCtrl(t, u.Host), target.URL+"/old")
	assert.Equal(t, http.StatusCreated, rec.Code)
}
