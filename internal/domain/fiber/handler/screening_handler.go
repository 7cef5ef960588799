package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/talentscout/screening/internal/dto"
	"github.com/talentscout/screening/internal/middleware"
	"github.com/talentscout/screening/internal/response"
	"github.com/talentscout/screening/internal/usecase"
	"github.com/talentscout/screening/internal/util"
	"github.com/talentscout/screening/internal/wizard"
)

type ScreeningHandler struct {
	uc *usecase.ScreeningUsecase
}

func NewScreeningHandler(uc *usecase.ScreeningUsecase) *ScreeningHandler {
	return &ScreeningHandler{uc: uc}
}

func (h *ScreeningHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/screenings", middleware.RateLimiter(20, 1*time.Minute), h.Start)
	app.Get("/screenings/:id", h.State)
	app.Post("/screenings/:id/input", middleware.RateLimiter(60, 1*time.Minute), h.Input)
	app.Post("/screenings/:id/submit", middleware.RateLimiter(20, 1*time.Minute), h.Submit)
	app.Get("/candidates", h.Candidates)
}

type inputRequest struct {
	Value string `json:"value"`
}

func (h *ScreeningHandler) Start(c *fiber.Ctx) error {
	id, snap := h.uc.StartSession()
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Screening session started",
		Data:    dto.NewScreeningSessionDTO(id, snap),
	})
}

func (h *ScreeningHandler) State(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid session id",
		}, err)
	}

	snap, err := h.uc.SessionState(id)
	if err != nil {
		return h.respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get screening session",
		Data:    dto.NewScreeningSessionDTO(id, snap),
	})
}

// Input handles one submission action: a profile field while collecting, an
// answer while asking.
func (h *ScreeningHandler) Input(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid session id",
		}, err)
	}

	var req inputRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	snap, err := h.uc.SubmitInput(c.UserContext(), id, req.Value)
	if err != nil {
		return h.respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Input accepted",
		Data:    dto.NewScreeningSessionDTO(id, snap),
	})
}

func (h *ScreeningHandler) Submit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid session id",
		}, err)
	}

	candidate, err := h.uc.SubmitFinal(c.UserContext(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Screening submitted and saved",
		Data: fiber.Map{
			"id":            candidate.ID,
			"score_percent": candidate.ScorePercent,
		},
	})
}

func (h *ScreeningHandler) Candidates(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", 20)
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	candidates, total, err := h.uc.Candidates(c.UserContext(), offset, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to list candidates",
		}, err)
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	pagination := &response.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    int64(page) < totalPages,
	}
	if len(candidates) > 0 {
		pagination.From = offset + 1
		pagination.To = offset + len(candidates)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get candidates",
		Data:       candidates,
		Pagination: pagination,
	})
}

func (h *ScreeningHandler) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "screening session not found",
		}, err)
	case errors.Is(err, wizard.ErrDuplicate):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: "this email or phone number has already been used for screening",
		}, err)
	case errors.Is(err, wizard.ErrFrozen):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: "this screening has already been submitted",
		}, err)
	case errors.Is(err, wizard.ErrBadState):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusConflict,
			Message: "action not valid in the current step",
		}, err)
	case errors.Is(err, wizard.ErrValidation):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusUnprocessableEntity,
			Message: err.Error(),
		}, err)
	case errors.Is(err, wizard.ErrGeneration):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: "failed to generate interview questions",
		}, err)
	default:
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "internal error",
		}, err)
	}
}
