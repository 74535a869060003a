package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrackd/fintrack_backend/internal/apperrors"
	portsrepo "github.com/fintrackd/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackd/fintrack_backend/internal/core/ports/services"
	"github.com/fintrackd/fintrack_backend/internal/dto"
	"github.com/fintrackd/fintrack_backend/internal/middleware"
)

// rateDatumHandler handles HTTP requests related to currency rate datums.
type rateDatumHandler struct {
	txm      portsrepo.TransactionManager
	datumSvc portssvc.RateDatumSvcFacade
}

func newRateDatumHandler(txm portsrepo.TransactionManager, ds portssvc.RateDatumSvcFacade) *rateDatumHandler {
	return &rateDatumHandler{
		txm:      txm,
		datumSvc: ds,
	}
}

// registerRateDatumRoutes registers routes related to rate datums.
func registerRateDatumRoutes(rg *gin.RouterGroup, txm portsrepo.TransactionManager, ds portssvc.RateDatumSvcFacade) {
	h := newRateDatumHandler(txm, ds)

	datums := rg.Group("/currency-rate-datums")
	{
		datums.POST("", h.createRateDatum)
	}
}

func (h *rateDatumHandler) createRateDatum(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRateDatumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRateDatum", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + bindingErrorMessage(err)})
		return
	}

	ownerID, ok := ownerIDFromContext(c)
	if !ok {
		return
	}

	logger = logger.With(slog.String("ref_currency_id", req.RefCurrencyID))
	logger.Info("Received request to create rate datum")

	ctx := c.Request.Context()
	tx, err := h.txm.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rate datum"})
		return
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	datumID, err := h.datumSvc.CreateRateDatum(ctx, tx, req, ownerID)
	if err != nil {
		respondRateDatumCreateError(c, logger, err)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Failed to commit transaction", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rate datum"})
		return
	}

	logger.Info("Rate datum created successfully", slog.String("datum_id", datumID.String()))
	c.JSON(http.StatusCreated, dto.CreateRateDatumResponse{ID: datumID.String()})
}

func respondRateDatumCreateError(c *gin.Context, logger *slog.Logger, err error) {
	var invalidDecimal *apperrors.InvalidDecimalValueError
	var currencyNotFound *apperrors.CurrencyNotFoundError
	var cyclicRef *apperrors.CyclicRefAmountCurrencyError
	switch {
	case errors.As(err, &currencyNotFound):
		logger.Warn("Datum references unknown currency", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &cyclicRef):
		logger.Warn("Datum prices a currency against itself", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &invalidDecimal):
		logger.Warn("Invalid decimal amount", slog.String("raw", invalidDecimal.Raw))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Datum already exists for this currency and date")
		c.JSON(http.StatusConflict, gin.H{"error": "A rate datum already exists for this currency at this date"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error creating rate datum", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to create rate datum in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rate datum"})
	}
}
