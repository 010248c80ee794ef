package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/evergreenmedia/showdesk/internal/csvio"
	"github.com/evergreenmedia/showdesk/internal/middleware"
	"github.com/evergreenmedia/showdesk/internal/model"
	"github.com/evergreenmedia/showdesk/internal/repository"
)

// CSVHandler serves the spreadsheet boundary: export, import, and the
// import template.
type CSVHandler struct {
	Shows *repository.ShowRepo
}

func NewCSVHandler(s *repository.ShowRepo) *CSVHandler {
	return &CSVHandler{Shows: s}
}

// Export handles GET /podcasts/export. Without an ids param it exports the
// caller's full role-scoped show set; with ids=a,b,c it exports exactly the
// named shows the caller can see. Unknown ids are skipped, not errors.
func (h *CSVHandler) Export(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	var (
		shows []model.Show
		err   error
	)
	if middleware.Role(c) == string(model.RoleAdmin) {
		shows, err = h.Shows.ListAll(ctx)
	} else {
		shows, err = h.Shows.ListForPartner(ctx, middleware.UserID(c))
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "failed to load shows"})
	}

	if param := c.QueryParam("ids"); param != "" {
		selected := map[string]bool{}
		for _, id := range strings.Split(param, ",") {
			if id = strings.TrimSpace(id); id != "" {
				selected[id] = true
			}
		}
		subset := shows[:0]
		for _, s := range shows {
			if selected[s.ID] {
				subset = append(subset, s)
			}
		}
		shows = subset
	}

	content := csvio.Encode(shows, time.Now())
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="podcasts_export.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(content))
}

// Template handles GET /podcasts/import/template: the column schema plus
// one sample row, ready to fill in.
func (h *CSVHandler) Template(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="podcast_import_template.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(csvio.Template(time.Now())))
}

// Import handles POST /podcasts/import (admin only). The body is either a
// multipart upload under the "file" field or the raw CSV itself. Every row
// becomes a new show; the whole file is rejected up front on the first
// malformed row so a half-imported file never lands.
func (h *CSVHandler) Import(c echo.Context) error {
	content, err := readUpload(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "could not read upload"})
	}

	shows, err := csvio.Decode(content, time.Now())
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": err.Error()})
	}
	if len(shows) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "no rows to import"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	imported := 0
	for i := range shows {
		s := &shows[i]
		if err := h.Shows.Create(ctx, s); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "import failed after " + strconv.Itoa(imported) + " rows"})
		}
		publishShowChange(c, "imported", s)
		imported++
	}
	return c.JSON(http.StatusCreated, echo.Map{"imported": imported})
}

// readUpload returns the CSV text from a multipart "file" field when one is
// present, otherwise the raw request body.
func readUpload(c echo.Context) (string, error) {
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		b, err := io.ReadAll(f)
		return string(b), err
	}
	b, err := io.ReadAll(c.Request().Body)
	return string(b), err
}
