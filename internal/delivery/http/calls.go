package http

import (
	"net/http"
	"strconv"
	"time"

	"telegram-calls/internal/dto"
	"telegram-calls/internal/model"
	"telegram-calls/pkg/utils"

	"github.com/labstack/echo/v4"
)

const defaultCallsLimit = 50

func (h *HttpAPIHandler) SetupCalls(base *echo.Group) {
	base.POST("/parse", h.parseMessage)
	base.GET("/calls", h.getCalls)
}

// parseMessage classifies a message without touching storage or the
// forwarder, useful for tuning rules against sample messages.
func (h *HttpAPIHandler) parseMessage(c echo.Context) error {
	req := new(dto.ParseRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	call := h.service.CallService.Parse(dto.InputMessage{
		Text:      req.Text,
		HasImage:  req.HasImage,
		Timestamp: time.Now(),
	})
	if call == nil {
		return c.JSON(http.StatusOK, dto.NewSuccessResponse("no call detected", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("call detected", call))
}

func (h *HttpAPIHandler) getCalls(c echo.Context) error {
	ctx := c.Request().Context()

	param := model.GetTradingCallParam{Limit: defaultCallsLimit}
	if group := c.QueryParam("group"); group != "" {
		param.GroupLabel = utils.ToPointer(group)
	}
	if minConf := c.QueryParam("min_confidence"); minConf != "" {
		v, err := strconv.Atoi(minConf)
		if err != nil {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("min_confidence must be an integer"))
		}
		param.MinConfidence = utils.ToPointer(v)
	}
	if limit := c.QueryParam("limit"); limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil || v <= 0 {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("limit must be a positive integer"))
		}
		param.Limit = v
	}

	calls, err := h.service.CallService.GetRecentCalls(ctx, param)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to fetch calls", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", calls))
}
