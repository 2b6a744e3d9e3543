package handler

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lwhela12/the-hive-api/errors"
	actionitemdto "github.com/lwhela12/the-hive-api/internal/adapter/dto/actionitem"
	domainrepo "github.com/lwhela12/the-hive-api/internal/domain/repositories"
)

// ActionItem exposes completion toggling and per-meeting listing
type ActionItem struct {
	items  domainrepo.ActionItemRepository
	logger *zap.Logger
}

// NewActionItem constructs the action item handler
func NewActionItem(items domainrepo.ActionItemRepository, logger *zap.Logger) *ActionItem {
	return &ActionItem{items: items, logger: logger}
}

// Toggle sets the completion flag on an action item
func (h *ActionItem) Toggle(c echo.Context) error {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid action item id"))
	}

	var req actionitemdto.ToggleRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	ctx := c.Request().Context()
	item, err := h.items.FindByID(ctx, itemID)
	if err != nil {
		return HandleError(h.logger, c, fmt.Errorf("failed to load action item: %w", err))
	}
	if item == nil {
		return HandleError(h.logger, c, errors.ErrActionItemNotFound(itemID.String()))
	}

	item.SetCompleted(*req.Completed)
	if err := h.items.Update(ctx, item); err != nil {
		return HandleError(h.logger, c, fmt.Errorf("failed to update action item: %w", err))
	}

	h.logger.Info("action item toggled",
		zap.String("action_item_id", item.ID.String()),
		zap.Bool("completed", item.Completed),
	)
	return HandleSuccess(h.logger, c, item)
}

// ListByMeeting returns a meeting's action items
func (h *ActionItem) ListByMeeting(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	items, err := h.items.ListByMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, fmt.Errorf("failed to list action items: %w", err))
	}
	return HandleSuccess(h.logger, c, items)
}
