package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"

	"geofoundry/internal/export"
	"geofoundry/internal/foundry"
	"geofoundry/internal/models"
	"geofoundry/internal/tensor"
)

const arrowStreamType = "application/vnd.apache.arrow.stream"

// Handler serves a foundry once one has been published with SetFoundry.
// Until then every data route answers 503.
type Handler struct {
	foundry atomic.Pointer[foundry.Foundry]
	mem     memory.Allocator
}

func NewHandler(f *foundry.Foundry) *Handler {
	h := &Handler{mem: memory.DefaultAllocator}
	if f != nil {
		h.foundry.Store(f)
	}
	return h
}

// SetFoundry publishes a fully loaded foundry to readers.
func (h *Handler) SetFoundry(f *foundry.Foundry) { h.foundry.Store(f) }

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api", h.requireLoaded)
	api.GET("/arrays", h.ListArrays)
	api.GET("/arrays/:stem", h.GetArray)
	api.GET("/names/:dict/:index", h.GetName)
	api.GET("/describe", h.Describe)
	api.GET("/boundaries/usage", h.GetBoundaryUsage)
	api.GET("/boundaries/usage.arrow", h.GetBoundaryUsageArrow)
}

func (h *Handler) requireLoaded(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.foundry.Load() == nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "foundry is loading")
		}
		return next(c)
	}
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// httpError maps the foundry error taxonomy onto status codes.
func httpError(err error) error {
	switch {
	case errors.Is(err, foundry.ErrLookup):
		return echo.NewHTTPError(http.StatusNotFound, err.Error()).SetInternal(err)
	case errors.Is(err, foundry.ErrFormatAssumption):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error()).SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error()).SetInternal(err)
}

func arrayInfo(f *foundry.Foundry, stem string) (models.ArrayInfo, error) {
	a, ok := f.Array(stem)
	if !ok {
		return models.ArrayInfo{}, &foundry.LookupError{Dict: "array", Stem: stem}
	}
	line, err := f.Describe(stem)
	if err != nil {
		return models.ArrayInfo{}, err
	}
	info := models.ArrayInfo{
		Stem:     stem,
		Kind:     a.Kind().String(),
		Shape:    a.Shape(),
		Path:     filepath.Join(f.Fold(), foundry.SourceName(stem, a.Kind())),
		Bytes:    a.ByteLen(),
		Size:     humanize.Bytes(uint64(a.ByteLen())),
		Checksum: fmt.Sprintf("%016x", a.Checksum()),
		Describe: line,
	}
	if a.Kind() == tensor.Numeric {
		info.DType = a.DType().String()
	}
	return info, nil
}

// ListArrays pages through arrays in load order.
func (h *Handler) ListArrays(c echo.Context) error {
	f := h.foundry.Load()
	stems := f.Stems()
	total := len(stems)
	limit, offset := getPaginationParams(c, total)

	page := models.ArrayPage{Data: []models.ArrayInfo{}, Total: total, Limit: limit, Offset: offset}
	if offset >= total {
		return c.JSON(http.StatusOK, page)
	}

	end := offset + limit
	if end > total {
		end = total
	}
	for _, stem := range stems[offset:end] {
		info, err := arrayInfo(f, stem)
		if err != nil {
			return httpError(err)
		}
		page.Data = append(page.Data, info)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *Handler) GetArray(c echo.Context) error {
	info, err := arrayInfo(h.foundry.Load(), c.Param("stem"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, info)
}

// GetName resolves an index in the mesh, boundary or ordinal dictionary.
func (h *Handler) GetName(c echo.Context) error {
	d, ok := h.foundry.Load().Dict(c.Param("dict"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown dictionary "+strconv.Quote(c.Param("dict")))
	}
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "index must be an integer")
	}
	name, err := d.Lookup(idx)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, models.NameEntry{Dict: d.Label(), Index: idx, Name: name})
}

func (h *Handler) Describe(c echo.Context) error {
	return c.String(http.StatusOK, h.foundry.Load().DescribeAll()+"\n")
}

func (h *Handler) GetBoundaryUsage(c echo.Context) error {
	rows, err := h.foundry.Load().BoundaryUsageHistogram()
	if err != nil {
		return httpError(err)
	}
	out := make([]models.BoundaryUsage, len(rows))
	for i, r := range rows {
		out[i] = models.BoundaryUsage{Boundary: r.Boundary, Count: r.Count, Name: r.Name}
	}
	return c.JSON(http.StatusOK, out)
}

// GetBoundaryUsageArrow returns the histogram as an Arrow IPC stream.
func (h *Handler) GetBoundaryUsageArrow(c echo.Context) error {
	rows, err := h.foundry.Load().BoundaryUsageHistogram()
	if err != nil {
		return httpError(err)
	}
	var buf bytes.Buffer
	if err := export.WriteBoundaryUsage(&buf, h.mem, rows); err != nil {
		return httpError(err)
	}
	return c.Blob(http.StatusOK, arrowStreamType, buf.Bytes())
}
