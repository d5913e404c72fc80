package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/api-sage/account-ledger-service/src/internal/adapter/http/models"
	"github.com/api-sage/account-ledger-service/src/internal/commons"
	"github.com/api-sage/account-ledger-service/src/internal/logger"
	"github.com/api-sage/account-ledger-service/src/internal/usecase/service_interfaces"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /account/open", c.openAccount)
	mux.HandleFunc("GET /account/user/{userId}", c.getAccountsByUserID)
	mux.HandleFunc("GET /account/validate/{accountNumber}", c.validateAccount)
	mux.HandleFunc("GET /account/{accountNumber}", c.getAccountByNumber)
}

func (c *AccountController) openAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.OpenAccount(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := http.StatusInternalServerError
		if response.Message == "validation failed" {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AccountController) getAccountsByUserID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	userID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil {
		response := commons.ErrorResponse[[]models.AccountResponse]("validation failed", "userId must be an integer")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, svcErr := c.service.GetAccountsByUserID(r.Context(), userID)
	if svcErr != nil {
		logError(r, svcErr, logger.Fields{"message": response.Message})
		status := http.StatusInternalServerError
		if response.Message == "validation failed" {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) getAccountByNumber(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetAccountByNumber(r.Context(), r.PathValue("accountNumber"))
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

func (c *AccountController) validateAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ValidateAccountExists(r.Context(), r.PathValue("accountNumber"))
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

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func statusForMessage(message string) int {
	switch message {
	case "validation failed":
		return http.StatusBadRequest
	case "Account not found":
		return http.StatusNotFound
	case "Insufficient funds":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
