// Package docs holds the swagger description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "User login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "login", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register new user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "register", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterUserRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.UserResponse"}},
                    "409": {"description": "Username already taken", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/currencies": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["currencies"],
                "summary": "List all currencies",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.CurrencyResponse"}}}}
            }
        },
        "/currencies/{code}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["currencies"],
                "summary": "Get a currency by code",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.CurrencyResponse"}},
                    "404": {"description": "Currency not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/rates": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["rates"],
                "summary": "List exchange rates",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "currency", "in": "query"},
                    {"type": "integer", "name": "top", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListExchangeRatesResponse"}}}
            }
        },
        "/rates/refresh": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["rates"],
                "summary": "Refresh exchange rates",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "refresh", "schema": {"$ref": "#/definitions/dto.RefreshRatesRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.RefreshRatesResponse"}},
                    "503": {"description": "Every source failed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/rates/{fromCode}/{toCode}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["rates"],
                "summary": "Get an exchange rate",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "fromCode", "in": "path", "required": true},
                    {"type": "string", "name": "toCode", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ExchangeRateResponse"}},
                    "503": {"description": "Rate unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/portfolio": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["portfolio"],
                "summary": "Get the valued portfolio",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "base", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PortfolioResponse"}}}
            }
        },
        "/portfolio/wallets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["portfolio"],
                "summary": "List wallets",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.WalletListResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["portfolio"],
                "summary": "Open a wallet",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "wallet", "required": true, "schema": {"$ref": "#/definitions/dto.OpenWalletRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.WalletListResponse"}},
                    "409": {"description": "Wallet already exists", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/trades/buy": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["trades"],
                "summary": "Buy a currency",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "trade", "required": true, "schema": {"$ref": "#/definitions/dto.TradeRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TradeResponse"}},
                    "422": {"description": "Insufficient funds", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/trades/sell": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["trades"],
                "summary": "Sell a currency",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "trade", "required": true, "schema": {"$ref": "#/definitions/dto.TradeRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TradeResponse"}},
                    "422": {"description": "Insufficient funds", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "kind": {"type": "string"}}},
        "dto.LoginRequest": {"type": "object", "required": ["username", "password"], "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "dto.RegisterUserRequest": {"type": "object", "required": ["username", "password"], "properties": {"username": {"type": "string"}, "password": {"type": "string", "minLength": 4}}},
        "dto.UserResponse": {"type": "object", "properties": {"userID": {"type": "string"}, "username": {"type": "string"}, "registeredAt": {"type": "string"}}},
        "dto.LoginResponse": {"type": "object", "properties": {"token": {"type": "string"}, "expiresAt": {"type": "string"}, "user": {"$ref": "#/definitions/dto.UserResponse"}}},
        "dto.CurrencyResponse": {"type": "object", "properties": {"currencyCode": {"type": "string"}, "name": {"type": "string"}, "kind": {"type": "string"}, "issuingCountry": {"type": "string"}, "algorithm": {"type": "string"}, "marketCap": {"type": "number"}, "display": {"type": "string"}}},
        "dto.ExchangeRateResponse": {"type": "object", "properties": {"pair": {"type": "string"}, "fromCurrencyCode": {"type": "string"}, "toCurrencyCode": {"type": "string"}, "rate": {"type": "string"}, "observedAt": {"type": "string"}, "source": {"type": "string"}, "stale": {"type": "boolean"}}},
        "dto.ListExchangeRatesResponse": {"type": "object", "properties": {"rates": {"type": "array", "items": {"$ref": "#/definitions/dto.ExchangeRateResponse"}}, "lastRefresh": {"type": "string"}}},
        "dto.RefreshRatesRequest": {"type": "object", "properties": {"source": {"type": "string"}}},
        "dto.RefreshRatesResponse": {"type": "object", "properties": {"saved": {"type": "integer"}, "refreshedAt": {"type": "string"}, "sources": {"type": "array", "items": {"type": "object", "properties": {"source": {"type": "string"}, "fetched": {"type": "integer"}, "error": {"type": "string"}}}}}},
        "dto.OpenWalletRequest": {"type": "object", "required": ["currencyCode"], "properties": {"currencyCode": {"type": "string"}}},
        "dto.Wallet": {"type": "object", "properties": {"currencyCode": {"type": "string"}, "balance": {"type": "string"}}},
        "dto.WalletListResponse": {"type": "object", "properties": {"userID": {"type": "string"}, "wallets": {"type": "array", "items": {"$ref": "#/definitions/dto.Wallet"}}}},
        "dto.PortfolioResponse": {"type": "object", "properties": {"userID": {"type": "string"}, "baseCurrency": {"type": "string"}, "total": {"type": "string"}, "totalDisplay": {"type": "string"}, "updatedAt": {"type": "string"}, "wallets": {"type": "array", "items": {"type": "object"}}}},
        "dto.TradeRequest": {"type": "object", "required": ["currencyCode", "amount"], "properties": {"currencyCode": {"type": "string"}, "amount": {"type": "string"}}},
        "dto.TradeResponse": {"type": "object", "properties": {"side": {"type": "string"}, "currencyCode": {"type": "string"}, "amount": {"type": "string"}, "baseCurrency": {"type": "string"}, "baseAmount": {"type": "string"}, "rate": {"type": "string"}, "executedAt": {"type": "string"}, "balances": {"type": "array", "items": {"$ref": "#/definitions/dto.Wallet"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"description": "Type \"Bearer\" followed by a space and JWT token.", "type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "ValutaTrade Hub API",
	Description:      "Simulated currency trading: portfolios, trades and exchange rates.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
