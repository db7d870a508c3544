package limits

import (
	"context"
	"errors"
	"net/http"

	"github.com/GlebRadaev/cardguard/internal/domain"
	"github.com/GlebRadaev/cardguard/internal/dto"
	"github.com/GlebRadaev/cardguard/internal/service/limitservice"
	"github.com/GlebRadaev/cardguard/pkg/auth"
	"github.com/GlebRadaev/cardguard/pkg/utils"
)

//go:generate mockgen -source=limits.go -destination=mock_limits.go -package=limits

type Service interface {
	GetSpendingSummary(ctx context.Context, userID string) (*domain.SpendingSummary, error)
	CheckLimitWarnings(ctx context.Context, userID string) ([]domain.LimitWarning, error)
}

type LimitHandler struct {
	limitService Service
}

func New(limitService Service) *LimitHandler {
	return &LimitHandler{
		limitService: limitService,
	}
}

// GetSpendingSummary godoc
//
//	@Summary		Get spending summary
//	@Description	Current usage, remaining headroom and percent used for every limit of the user's tier.
//	@Tags			Limits
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.SpendingSummaryResponseDTO	"Spending summary"
//	@Failure		401	{object}	utils.Response					"User not authorized"
//	@Failure		404	{object}	utils.Response					"User not found"
//	@Failure		500	{object}	utils.Response					"Internal server error"
//	@Router			/api/limits/summary [get]
func (h *LimitHandler) GetSpendingSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	summary, err := h.limitService.GetSpendingSummary(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.SpendingSummaryResponseDTO{
		Tier:        summary.Tier,
		Daily:       dto.NewLimitUsageDTO(summary.Daily),
		Weekly:      dto.NewLimitUsageDTO(summary.Weekly),
		Monthly:     dto.NewLimitUsageDTO(summary.Monthly),
		ActiveCards: dto.NewLimitUsageDTO(summary.ActiveCards),
	})
}

// GetWarnings godoc
//
//	@Summary		Get limit warnings
//	@Description	One warning per limit at or above 80% use; critical from 95%.
//	@Tags			Limits
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.LimitWarningResponseDTO	"Warnings, possibly empty"
//	@Failure		401	{object}	utils.Response				"User not authorized"
//	@Failure		404	{object}	utils.Response				"User not found"
//	@Failure		500	{object}	utils.Response				"Internal server error"
//	@Router			/api/limits/warnings [get]
func (h *LimitHandler) GetWarnings(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	warnings, err := h.limitService.CheckLimitWarnings(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	response := make([]dto.LimitWarningResponseDTO, len(warnings))
	for i, wr := range warnings {
		response[i] = dto.LimitWarningResponseDTO{
			Type:        string(wr.Type),
			Level:       string(wr.Level),
			PercentUsed: wr.PercentUsed,
			Message:     wr.Message,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, limitservice.ErrUserNotFound) {
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
}
