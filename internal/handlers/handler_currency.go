package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fintrackd/fintrack_backend/internal/apperrors"
	portsrepo "github.com/fintrackd/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackd/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackd/fintrack_backend/internal/dto"
	"github.com/fintrackd/fintrack_backend/internal/middleware"
	"github.com/fintrackd/fintrack_backend/internal/utils"
)

// rateResponsePlaces is the number of decimal places resolved rates are
// rounded to before leaving the API.
const rateResponsePlaces = 10

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	txm         portsrepo.TransactionManager
	currencySvc portssvc.CurrencySvcFacade
	rateSvc     portssvc.RateSvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(txm portsrepo.TransactionManager, cs portssvc.CurrencySvcFacade, rs portssvc.RateSvcFacade) *currencyHandler {
	return &currencyHandler{
		txm:         txm,
		currencySvc: cs,
		rateSvc:     rs,
	}
}

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, txm portsrepo.TransactionManager, cs portssvc.CurrencySvcFacade, rs portssvc.RateSvcFacade) {
	h := newCurrencyHandler(txm, cs, rs)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createCurrency)
		currencies.GET("", h.getCurrencies)
	}
}

func (h *currencyHandler) createCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + bindingErrorMessage(err)})
		return
	}

	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	logger = logger.With(slog.String("currency_name", req.Name))
	logger.Info("Received request to create currency")

	ctx := c.Request.Context()
	tx, err := h.txm.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create currency"})
		return
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	currencyID, err := h.currencySvc.CreateCurrency(ctx, tx, req, ownerID)
	if err != nil {
		respondCurrencyCreateError(c, logger, err)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Failed to commit transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create currency"})
		return
	}

	logger.Info("Currency created successfully", slog.String("currency_id", currencyID.String()))
	c.JSON(http.StatusCreated, dto.CreateCurrencyResponse{ID: currencyID.String()})
}

func respondCurrencyCreateError(c *gin.Context, logger *slog.Logger, err error) {
	var invalidDecimal *apperrors.InvalidDecimalValueError
	var refNotExist *apperrors.ReferencedCurrencyNotExistError
	switch {
	case errors.Is(err, apperrors.ErrRepeatedBaseCurrency):
		logger.Warn("Attempted to create a second base currency")
		c.JSON(http.StatusConflict, gin.H{"error": "A base currency already exists"})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Attempted to create duplicate currency", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &invalidDecimal):
		logger.Warn("Invalid decimal amount", slog.String("raw", invalidDecimal.Raw))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &refNotExist):
		logger.Warn("Fallback currency does not exist", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error creating currency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to create currency in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create currency"})
	}
}

// getCurrencies serves both the single-currency lookup (?id=...) and the
// full listing. Every returned currency carries its rate against the owner's
// base currency at the queried date (?date=..., defaults to now).
func (h *currencyHandler) getCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	date := time.Now().UTC()
	if rawDate := c.Query("date"); rawDate != "" {
		parsed, err := utils.ParseUTCDate(rawDate)
		if err != nil {
			logger.Warn("Invalid date query parameter", slog.String("date", rawDate))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date: " + err.Error()})
			return
		}
		date = parsed
	}

	var currencyID *uuid.UUID
	if rawID := c.Query("id"); rawID != "" {
		parsed, err := uuid.Parse(rawID)
		if err != nil {
			logger.Warn("Invalid id query parameter", slog.String("id", rawID))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid currency id"})
			return
		}
		currencyID = &parsed
	}

	ctx := c.Request.Context()
	tx, err := h.txm.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve currencies"})
		return
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if currencyID != nil {
		h.getSingleCurrency(c, tx, ownerID, *currencyID, date)
		return
	}

	currencies, err := h.currencySvc.ListCurrencies(ctx, tx, ownerID)
	if err != nil {
		logger.Error("Failed to list currencies from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list currencies"})
		return
	}

	items := make([]dto.CurrencyResponse, 0, len(currencies))
	for i := range currencies {
		rate, err := h.rateSvc.RateToBase(ctx, tx, ownerID, currencies[i].ID, date)
		if err != nil {
			logger.Error("Failed to resolve currency rate", slog.String("currency_id", currencies[i].ID.String()), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve currency rate"})
			return
		}
		items = append(items, dto.ToCurrencyResponse(&currencies[i], rate.Round(rateResponsePlaces).String()))
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Failed to commit transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve currencies"})
		return
	}

	logger.Info("Currencies listed successfully", slog.Int("count", len(items)))
	c.JSON(http.StatusOK, items)
}

func (h *currencyHandler) getSingleCurrency(c *gin.Context, tx portsrepo.Tx, ownerID, currencyID uuid.UUID, date time.Time) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("currency_id", currencyID.String()))

	currency, err := h.currencySvc.GetCurrencyByID(ctx, tx, ownerID, currencyID)
	if err != nil {
		logger.Error("Failed to get currency from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve currency"})
		return
	}
	if currency == nil {
		logger.Warn("Currency not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Currency not found"})
		return
	}

	rate, err := h.rateSvc.RateToBase(ctx, tx, ownerID, currencyID, date)
	if err != nil {
		logger.Error("Failed to resolve currency rate", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve currency rate"})
		return
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Failed to commit transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve currency"})
		return
	}

	logger.Info("Currency retrieved successfully")
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency, rate.Round(rateResponsePlaces).String()))
}

// ownerIDFromContext extracts the authenticated user's id and aborts the
// request when it is missing or malformed.
func ownerIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	raw, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.UUID{}, false
	}
	ownerID, err := uuid.Parse(raw)
	if err != nil {
		logger.Error("Owner user ID in context is not a UUID", slog.String("user_id", raw))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.UUID{}, false
	}
	return ownerID, true
}
