package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/service"
	"github.com/ndewijer/Finance-Tracker-Backend/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService. Every route is scoped to the
// identity of the request's session.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// AllTransactions handles GET requests to retrieve the caller's transactions.
//
// Endpoint: GET /api/transaction
// Response: 200 OK with array of TransactionResponse, newest date first
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) AllTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.GetTransactions(r.Context(), ownerID(r))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transaction/{uuid}
// Response: 200 OK with TransactionResponse
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.transactionService.GetTransaction(r.Context(), ownerID(r), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to create a new transaction.
//
// Endpoint: POST /api/transaction
// Request Body: TransactionRequest (name, amount and date required)
// Response: 201 Created with TransactionResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if a client supplied id already exists
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.TransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), ownerID(r), req)
	if err != nil {
		respondWriteError(w, err, apperrors.ErrFailedToCreateTransaction)
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests to replace an existing transaction.
// The id and owner of the stored record are kept.
//
// Endpoint: PUT /api/transaction/{uuid}
// Request Body: TransactionRequest
// Response: 200 OK with TransactionResponse
// Response: 204 No Content if the id is unknown and missing updates are ignored
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the id is unknown and missing updates are rejected
// Error: 500 Internal Server Error if the update fails
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.TransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	req.ID = ""

	transaction, updated, err := h.transactionService.UpdateTransaction(r.Context(), ownerID(r), transactionID, req)
	if err != nil {
		respondWriteError(w, err, apperrors.ErrFailedToUpdateTransaction)
		return
	}
	if !updated {
		response.RespondJSON(w, http.StatusNoContent, nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
// The caller must confirm the deletion with ?confirm=true. Deleting an
// unknown id succeeds without effect.
//
// Endpoint: DELETE /api/transaction/{uuid}?confirm=true
// Response: 204 No Content
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 428 Precondition Required if the deletion is not confirmed
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	if r.URL.Query().Get("confirm") != "true" {
		response.RespondError(w, http.StatusPreconditionRequired, apperrors.ErrDeleteNotConfirmed.Error(), "repeat the request with ?confirm=true")
		return
	}

	if _, err := h.transactionService.DeleteTransaction(r.Context(), ownerID(r), transactionID); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDeleteTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Summary handles GET requests for the caller's aggregate totals.
//
// Endpoint: GET /api/transaction/summary
// Response: 200 OK with SummaryResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.transactionService.GetSummary(r.Context(), ownerID(r))
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// respondWriteError maps create and update failures to HTTP statuses.
func respondWriteError(w http.ResponseWriter, err error, failure error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		message := "validation failed"
		if verr.Err != nil {
			message = verr.Err.Error()
		}
		response.RespondError(w, http.StatusBadRequest, message, verr.Fields)
	case errors.Is(err, apperrors.ErrTransactionNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
	case errors.Is(err, apperrors.ErrDuplicateEntry):
		response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateEntry.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, failure.Error(), err.Error())
	}
}
