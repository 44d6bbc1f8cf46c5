package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/dto"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/service"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

// ComplaintsHandler manages complaint endpoints.
type ComplaintsHandler struct {
	complaints    *service.ComplaintService
	notifications *service.NotificationService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaints *service.ComplaintService, notifications *service.NotificationService) *ComplaintsHandler {
	return &ComplaintsHandler{complaints: complaints, notifications: notifications}
}

// Create POST /complaints.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Missing required fields", nil)
	}

	complaint, err := h.complaints.Submit(c.UserContext(), principal.User.ID, service.SubmitComplaintInput{
		ProductID:     req.ProductID,
		CustomerName:  req.Customer.Name,
		CustomerEmail: req.Customer.Email,
		Description:   req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.ComplaintEnvelope{
		Message:   "Complaint created successfully",
		Complaint: complaintResponse(complaint),
	})
}

// List GET /complaints.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
	query, err := parseComplaintQuery(c)
	if err != nil {
		return err
	}
	page, err := h.complaints.List(c.UserContext(), query)
	if err != nil {
		return err
	}
	items := make([]dto.ComplaintResponse, 0, len(page.Complaints))
	for i := range page.Complaints {
		items = append(items, complaintResponse(&page.Complaints[i]))
	}
	return c.JSON(dto.ComplaintListResponse{
		Complaints: items,
		Total:      page.Total,
		Pages:      page.Pages,
	})
}

// Get GET /complaints/:id.
func (h *ComplaintsHandler) Get(c *fiber.Ctx) error {
	id, err := complaintID(c)
	if err != nil {
		return err
	}
	complaint, err := h.complaints.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(complaintResponse(complaint))
}

// Update PUT /complaints/:id.
func (h *ComplaintsHandler) Update(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := complaintID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request body", nil)
	}

	complaint, err := h.complaints.Update(c.UserContext(), principal.User.ID, id, service.ComplaintPatch{
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.ComplaintEnvelope{
		Message:   "Complaint updated successfully",
		Complaint: complaintResponse(complaint),
	})
}

// Delete DELETE /complaints/:id cancels the complaint; nothing is removed.
func (h *ComplaintsHandler) Delete(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	id, err := complaintID(c)
	if err != nil {
		return err
	}
	if err := h.complaints.Cancel(c.UserContext(), principal.User.ID, id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Complaint canceled successfully"})
}

// Notifications GET /complaints/:id/notifications.
func (h *ComplaintsHandler) Notifications(c *fiber.Ctx) error {
	id, err := complaintID(c)
	if err != nil {
		return err
	}
	notifications, err := h.notifications.ListForComplaint(c.UserContext(), id)
	if err != nil {
		return err
	}
	items := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, dto.NotificationResponse{
			ID:          n.ID,
			ComplaintID: n.ComplaintID,
			Message:     n.Message,
			Date:        n.Date,
		})
	}
	return c.JSON(dto.NotificationListResponse{Notifications: items})
}

func requirePrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	return principal, nil
}

// complaintID treats an unparsable id like an unknown one.
func complaintID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewNotFound("Complaint", nil)
	}
	return id, nil
}

func parseComplaintQuery(c *fiber.Ctx) (service.ComplaintQuery, error) {
	query := service.ComplaintQuery{
		Page:     parseInt(c.Query("page"), 1),
		PageSize: parseInt(c.Query("pageSize"), 0),
	}
	if raw := c.Query("productId"); raw != "" {
		productID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return query, apperrors.NewValidationError("Invalid productId", nil)
		}
		query.ProductID = &productID
	}
	if name := c.Query("customerName"); name != "" {
		query.CustomerName = &name
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.ComplaintStatus(raw)
		if !status.Valid() {
			return query, apperrors.NewValidationError("Invalid status value", map[string]any{"allowed": domain.ComplaintStatuses})
		}
		query.Status = &status
	}
	return query, nil
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func complaintResponse(complaint *domain.Complaint) dto.ComplaintResponse {
	return dto.ComplaintResponse{
		ID:            complaint.ID,
		ProductID:     complaint.ProductID,
		CustomerName:  complaint.CustomerName,
		CustomerEmail: complaint.CustomerEmail,
		Date:          complaint.Date,
		Description:   complaint.Description,
		Status:        complaint.Status,
		CreatedAt:     complaint.CreatedAt,
		UpdatedAt:     complaint.UpdatedAt,
	}
}
