package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/telecom-triage/internal/api/dto"
	"github.com/spec-kit/telecom-triage/internal/domain"
	"github.com/spec-kit/telecom-triage/internal/repository"
	"github.com/spec-kit/telecom-triage/internal/service"
	apperrors "github.com/spec-kit/telecom-triage/pkg/util"
)

// ReportsHandler exposes the operator-facing reporting and status endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// ListQueries GET /queries.
func (h *ReportsHandler) ListQueries(c *fiber.Ctx) error {
	filter, err := parseRecordFilter(c)
	if err != nil {
		return err
	}
	records, err := h.service.ListQueries(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.QueryRecordResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.NewQueryRecordResponse(records[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// QueryStats GET /queries/stats.
func (h *ReportsHandler) QueryStats(c *fiber.Ctx) error {
	filter, err := parseRecordFilter(c)
	if err != nil {
		return err
	}
	stats, err := h.service.QueryStats(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// UpdateQueryStatus PATCH /queries/:id/status.
func (h *ReportsHandler) UpdateQueryStatus(c *fiber.Ctx) error {
	id, err := parseRecordID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.UpdateQueryStatus(c.UserContext(), id, domain.QueryStatus(req.Status)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": id, "status": req.Status}})
}

// ListGrievances GET /grievances.
func (h *ReportsHandler) ListGrievances(c *fiber.Ctx) error {
	filter, err := parseRecordFilter(c)
	if err != nil {
		return err
	}
	records, err := h.service.ListGrievances(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.GrievanceRecordResponse, 0, len(records))
	for i := range records {
		items = append(items, dto.NewGrievanceRecordResponse(records[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetGrievance GET /grievances/:id.
func (h *ReportsHandler) GetGrievance(c *fiber.Ctx) error {
	id, err := parseRecordID(c)
	if err != nil {
		return err
	}
	record, err := h.service.GetGrievance(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewGrievanceRecordResponse(*record)})
}

// GrievanceStats GET /grievances/stats.
func (h *ReportsHandler) GrievanceStats(c *fiber.Ctx) error {
	filter, err := parseRecordFilter(c)
	if err != nil {
		return err
	}
	stats, err := h.service.GrievanceStats(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// DepartmentCounts GET /grievances/departments.
func (h *ReportsHandler) DepartmentCounts(c *fiber.Ctx) error {
	filter, err := parseRecordFilter(c)
	if err != nil {
		return err
	}
	counts, err := h.service.DepartmentCounts(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": counts})
}

// UpdateGrievanceStatus PATCH /grievances/:id/status.
func (h *ReportsHandler) UpdateGrievanceStatus(c *fiber.Ctx) error {
	id, err := parseRecordID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	record, err := h.service.UpdateGrievanceStatus(c.UserContext(), id, domain.GrievanceStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewGrievanceRecordResponse(*record)})
}

func parseRecordID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid record id", nil)
	}
	return id, nil
}

// parseRecordFilter reads the shared reporting filters. Dates accept either
// a plain day or RFC 3339; an end date given as a day covers that whole day.
func parseRecordFilter(c *fiber.Ctx) (repository.RecordFilter, error) {
	var filter repository.RecordFilter

	if department := c.Query("department"); department != "" {
		filter.Department = &department
	}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := parseFilterDate(raw, false)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid start_date", map[string]any{"value": raw})
		}
		filter.StartDate = &parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := parseFilterDate(raw, true)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid end_date", map[string]any{"value": raw})
		}
		filter.EndDate = &parsed
	}
	return filter, nil
}

func parseFilterDate(raw string, endOfDay bool) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		parsed = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return parsed, nil
}
