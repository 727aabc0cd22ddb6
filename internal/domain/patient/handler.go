package patient

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc  *Service
	seed *SeedStore
}

func NewHandler(svc *Service, seed *SeedStore) *Handler {
	return &Handler{svc: svc, seed: seed}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/lpr/:patientId", h.GetSeedRecord)
	e.GET("/api/patients/:id", h.GetDetail)
}

// GetSeedRecord serves the static demo record for a patient.
func (h *Handler) GetSeedRecord(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	detail, ok := h.seed.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Patient not found"})
	}
	return c.JSON(http.StatusOK, detail)
}

// GetDetail fetches the live record from the upstream LPR API and returns
// it normalized. The response is always a complete record: upstream
// failures degrade to the per-patient default.
func (h *Handler) GetDetail(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	detail := h.svc.FetchDetail(c.Request().Context(), id, c.QueryParam("query"))
	return c.JSON(http.StatusOK, detail)
}
