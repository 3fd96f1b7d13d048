package controllerImp

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"conductor/entities"
	"conductor/pkg/catalog/controller"
	"conductor/pkg/catalog/importer"
	"conductor/pkg/catalog/service"
)

type CatalogCtrl struct {
	s        service.CatalogService
	allow    map[string]bool
	maxBytes int
	client   *http.Client
	log      *zap.Logger
}

var _ controller.CatalogController = (*CatalogCtrl)(nil)

func New(s service.CatalogService, allowedHosts []string, maxBytes int, log *zap.Logger) *CatalogCtrl {
	allow := map[string]bool{}
	for _, h := range allowedHosts {
		h = strings.TrimSpace(h)
		if h != "" {
			allow[strings.ToLower(h)] = true
		}
	}
	if maxBytes <= 0 {
		maxBytes = 1500000
	}
	if log == nil {
		log = zap.NewNop()
	}
	h := &CatalogCtrl{s: s, allow: allow, maxBytes: maxBytes, log: log}
	h.client = &http.Client{Timeout: 20 * time.Second, CheckRedirect: h.checkRedirect}
	return h
}

// checkRedirect keeps every hop of a catalog fetch on an allowed host.
func (h *CatalogCtrl) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= 5 {
		return fmt.Errorf("too many redirects")
	}
	if !h.allow[strings.ToLower(req.URL.Host)] {
		return fmt.Errorf("redirect to %s not allowed", req.URL.Host)
	}
	return nil
}

func (h *CatalogCtrl) Import(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	defer src.Close()

	res, err := importer.FromReader(fh.Filename, src, h.log)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	return h.store(c, res)
}

func (h *CatalogCtrl) ImportURL(c echo.Context) error {
	var body struct {
		URL string `json:"url"`
	}
	if err := c.Bind(&body); err != nil || body.URL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "url required"})
	}
	u, err := url.Parse(body.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad url"})
	}
	if !h.allow[strings.ToLower(u.Host)] {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "host not allowed"})
	}

	page, err := h.fetch(c.Request(), body.URL)
	if err != nil {
		h.log.Warn("catalog fetch failed", zap.String("url", body.URL), zap.Error(err))
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}
	res, err := importer.FromHTML(bytes.NewReader(page), h.log)
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	}
	return h.store(c, res)
}

func (h *CatalogCtrl) store(c echo.Context, res importer.Result) error {
	n, err := h.s.Import(res)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, echo.Map{"imported": n, "skipped": res.Skipped})
}

func (h *CatalogCtrl) List(c echo.Context) error {
	var f service.Filter
	if q := c.QueryParam("frequency"); q != "" {
		freq, ok := entities.ParseFrequency(q)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown frequency"})
		}
		f.Frequency = freq
	}
	if q := c.QueryParam("role"); q != "" {
		role, ok := entities.ParseRole(q)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
		}
		f.Role = role
	}
	crops, err := h.s.List(f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, crops)
}

// --- helpers ---
func (h *CatalogCtrl) fetch(in *http.Request, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(in.Context(), http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream status %d", resp.StatusCode)
	}
	if resp.ContentLength > int64(h.maxBytes) {
		return nil, fmt.Errorf("page too large")
	}
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(ct, "text/html") {
		return nil, fmt.Errorf("unsupported content-type: %s", ct)
	}
	limited := io.LimitedReader{R: resp.Body, N: int64(h.maxBytes) + 1}
	b, err := io.ReadAll(&limited)
	if err != nil {
		return nil, err
	}
	if len(b) > h.maxBytes {
		return nil, fmt.Errorf("page too large")
	}
	return b, nil
}
