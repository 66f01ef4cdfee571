package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/stpnv0/EventRadar/internal/domain"
	"github.com/stpnv0/EventRadar/internal/handler/dto"
	"github.com/wb-go/wbf/ginext"
)

type SearchSvc interface {
	Search(ctx context.Context, req domain.SearchRequest) domain.SearchResponse
}

type EventSvc interface {
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
}

type Handler struct {
	searchService SearchSvc
	eventService  EventSvc
}

func NewHandler(searchService SearchSvc, eventService EventSvc) *Handler {
	return &Handler{
		searchService: searchService,
		eventService:  eventService,
	}
}

// SearchEvents always answers 200 once the body parses; provider problems are
// reported in sourceStats.
func (h *Handler) SearchEvents(c *ginext.Context) {
	var req dto.SearchEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	search, err := req.ToDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp := h.searchService.Search(c.Request.Context(), search)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetEvent(c *ginext.Context) {
	event, err := h.eventService.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())

	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrTransientProvider),
		errors.Is(err, domain.ErrAuth),
		errors.Is(err, domain.ErrParse),
		errors.Is(err, domain.ErrConfig):
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "event provider unavailable"})

	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, dto.ErrorResponse{Error: "event provider timed out"})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
