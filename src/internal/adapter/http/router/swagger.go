package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Account Ledger Service API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Account Ledger Service API",
    "version": "1.0.0"
  },
  "paths": {
    "/account/open": {
      "post": {
        "summary": "Open a new account",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["userId", "userName", "email", "phoneNumber", "accountType"],
                "properties": {
                  "userId": {"type": "integer", "format": "int64"},
                  "userName": {"type": "string"},
                  "email": {"type": "string", "format": "email"},
                  "phoneNumber": {"type": "string"},
                  "accountType": {"type": "string", "example": "SAVINGS"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Account opened"},
          "400": {"description": "Validation error"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/account/{accountNumber}": {
      "get": {
        "summary": "Get account by account number",
        "parameters": [
          {
            "name": "accountNumber",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string",
              "pattern": "^[0-9]{10}$"
            }
          }
        ],
        "responses": {
          "200": {"description": "Account fetched"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/account/user/{userId}": {
      "get": {
        "summary": "Get all accounts owned by a user",
        "parameters": [
          {
            "name": "userId",
            "in": "path",
            "required": true,
            "schema": {
              "type": "integer",
              "format": "int64"
            }
          }
        ],
        "responses": {
          "200": {"description": "Accounts fetched"},
          "400": {"description": "Validation error"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/account/validate/{accountNumber}": {
      "get": {
        "summary": "Check whether an account number exists",
        "parameters": [
          {
            "name": "accountNumber",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string",
              "pattern": "^[0-9]{10}$"
            }
          }
        ],
        "responses": {
          "200": {"description": "Account is valid"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/account/transaction": {
      "post": {
        "summary": "Apply a credit or withdrawal to an account",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["accountNumber", "type", "amount"],
                "properties": {
                  "accountNumber": {"type": "string", "pattern": "^[0-9]{10}$"},
                  "type": {"type": "string", "enum": ["CREDIT", "WITHDRAW"]},
                  "amount": {"type": "string", "example": "100.00"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Transaction applied"},
          "400": {"description": "Validation error"},
          "404": {"description": "Account not found"},
          "422": {"description": "Insufficient funds"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/account/transactions": {
      "post": {
        "summary": "Transfer funds between two accounts",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["fromAccount", "toAccount", "amount"],
                "properties": {
                  "fromAccount": {"type": "string", "pattern": "^[0-9]{10}$"},
                  "toAccount": {"type": "string", "pattern": "^[0-9]{10}$"},
                  "amount": {"type": "string", "example": "50.00"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Transfer completed"},
          "400": {"description": "Validation error"},
          "404": {"description": "Account not found"},
          "422": {"description": "Insufficient funds"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/account/transaction/{accountNumber}": {
      "get": {
        "summary": "List transactions for an account in insertion order",
        "parameters": [
          {
            "name": "accountNumber",
            "in": "path",
            "required": true,
            "schema": {
              "type": "string",
              "pattern": "^[0-9]{10}$"
            }
          }
        ],
        "responses": {
          "200": {"description": "Transactions fetched"},
          "400": {"description": "Validation error"},
          "500": {"description": "Server error"}
        }
      }
    }
  }
}`
