package cards

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/GlebRadaev/cardguard/internal/domain"
	"github.com/GlebRadaev/cardguard/internal/dto"
	"github.com/GlebRadaev/cardguard/internal/service/issuanceservice"
	"github.com/GlebRadaev/cardguard/pkg/auth"
	"github.com/GlebRadaev/cardguard/pkg/utils"
	"github.com/go-chi/chi/v5"
)

//go:generate mockgen -source=cards.go -destination=mock_cards.go -package=cards

type Service interface {
	Evaluate(ctx context.Context, req issuanceservice.EvaluationRequest) (*domain.Decision, error)
	IssueCard(ctx context.Context, req issuanceservice.IssueRequest) (*issuanceservice.IssueResult, error)
	ReloadCard(ctx context.Context, req issuanceservice.ReloadRequest) (*issuanceservice.ReloadResult, error)
	RecordChargeback(ctx context.Context, userID, cardID, note string) error
}

type CardHandler struct {
	cardService Service
}

func New(cardService Service) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// Evaluate godoc
//
//	@Summary		Evaluate a card purchase or reload
//	@Description	Run the spending limit check and, when it passes, the risk assessment. Nothing is written.
//	@Tags			Cards
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.EvaluateRequestDTO	true	"Evaluation request"
//	@Success		200		{object}	domain.Decision			"Combined decision"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		422		{object}	utils.Response			"Invalid transaction"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/cards/evaluate [post]
func (h *CardHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.EvaluateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	decision, err := h.cardService.Evaluate(r.Context(), issuanceservice.EvaluationRequest{
		UserID:          userID,
		Amount:          req.Amount,
		TransactionType: domain.TransactionType(req.TransactionType),
		CardID:          req.CardID,
		IPAddress:       clientIP(r),
		UserAgent:       r.UserAgent(),
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, decision)
}

// IssueCard godoc
//
//	@Summary		Issue a prepaid card
//	@Description	Evaluate and create a card. Cards that need manual review are created pending.
//	@Tags			Cards
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.IssueCardRequestDTO	true	"Card request"
//	@Success		201		{object}	dto.CardResponseDTO		"Card created"
//	@Failure		400		{object}	utils.Response			"Invalid request body"
//	@Failure		401		{object}	utils.Response			"User not authorized"
//	@Failure		403		{object}	dto.CardResponseDTO		"Denied by limits or blocked by risk"
//	@Failure		422		{object}	utils.Response			"Invalid card parameters"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/cards [post]
func (h *CardHandler) IssueCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.IssueCardRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.cardService.IssueCard(r.Context(), issuanceservice.IssueRequest{
		UserID:     userID,
		Amount:     req.Amount,
		Reloadable: req.Reloadable,
		MaxReloads: req.MaxReloads,
		IPAddress:  clientIP(r),
		UserAgent:  r.UserAgent(),
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	response := dto.CardResponseDTO{Card: dto.NewCardDTO(result.Card), Decision: result.Decision}
	if result.Card == nil {
		utils.RespondWithJSON(w, http.StatusForbidden, response)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, response)
}

// ReloadCard godoc
//
//	@Summary		Reload a card
//	@Description	Evaluate and apply a reload. Reloads needing manual review are held and not applied.
//	@Tags			Cards
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			cardID	path		string						true	"Card id"
//	@Param			request	body		dto.ReloadCardRequestDTO	true	"Reload request"
//	@Success		200		{object}	dto.CardResponseDTO			"Reload applied"
//	@Success		202		{object}	dto.CardResponseDTO			"Reload held for review"
//	@Failure		400		{object}	utils.Response				"Invalid request body"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		403		{object}	dto.CardResponseDTO			"Denied by limits or blocked by risk"
//	@Failure		409		{object}	utils.Response				"Card changed during evaluation"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/cards/{cardID}/reload [post]
func (h *CardHandler) ReloadCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.ReloadCardRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.cardService.ReloadCard(r.Context(), issuanceservice.ReloadRequest{
		UserID:    userID,
		CardID:    chi.URLParam(r, "cardID"),
		Amount:    req.Amount,
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	response := dto.CardResponseDTO{Card: dto.NewCardDTO(result.Card), Decision: result.Decision}
	switch {
	case result.Held:
		utils.RespondWithJSON(w, http.StatusAccepted, response)
	case result.Card == nil:
		utils.RespondWithJSON(w, http.StatusForbidden, response)
	default:
		utils.RespondWithJSON(w, http.StatusOK, response)
	}
}

// RecordChargeback godoc
//
//	@Summary		Record a chargeback
//	@Description	Flag one of the user's cards as disputed. Later risk assessments take the flag into account.
//	@Tags			Cards
//	@Security		BearerAuth
//	@Accept			json
//	@Param			cardID	path	string						true	"Card id"
//	@Param			request	body	dto.ChargebackRequestDTO	false	"Chargeback notes"
//	@Success		204		"Chargeback recorded"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Card not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/cards/{cardID}/chargeback [post]
func (h *CardHandler) RecordChargeback(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.ChargebackRequestDTO
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	if err := h.cardService.RecordChargeback(r.Context(), userID, chi.URLParam(r, "cardID"), req.Notes); err != nil {
		respondWithServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, issuanceservice.ErrInvalidTransactionType),
		errors.Is(err, issuanceservice.ErrCardIDRequired),
		errors.Is(err, issuanceservice.ErrInvalidMaxReloads):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, issuanceservice.ErrCardNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, issuanceservice.ErrReloadConflict):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Service busy, please try again")
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// clientIP strips the port from RemoteAddr. middleware.RealIP has already
// replaced it with the forwarded address when one was sent.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
