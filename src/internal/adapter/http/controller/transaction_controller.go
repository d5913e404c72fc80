package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/account-ledger-service/src/internal/adapter/http/models"
	"github.com/api-sage/account-ledger-service/src/internal/commons"
	"github.com/api-sage/account-ledger-service/src/internal/logger"
	"github.com/api-sage/account-ledger-service/src/internal/usecase/service_interfaces"
)

type TransactionController struct {
	service service_interfaces.LedgerService
}

func NewTransactionController(service service_interfaces.LedgerService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /account/transaction", c.processTransaction)
	mux.HandleFunc("POST /account/transactions", c.transfer)
	mux.HandleFunc("GET /account/transaction/{accountNumber}", c.getTransactions)
}

func (c *TransactionController) processTransaction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransactionResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.ProcessTransaction(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForMessage(response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransactionController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.TransferResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.Transfer(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForMessage(response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *TransactionController) getTransactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetTransactions(r.Context(), r.PathValue("accountNumber"))
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := statusForMessage(response.Message)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
