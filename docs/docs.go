// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/balance_backend/main.go -o docs
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
        "/accounts": {
            "get": {"produces": ["application/json"], "tags": ["accounts"], "summary": "List accounts", "responses": {"200": {"description": "OK"}}},
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["accounts"], "summary": "Create a new account",
                "parameters": [{"description": "Account details", "name": "account", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/accounts/{id}": {
            "get": {"produces": ["application/json"], "tags": ["accounts"], "summary": "Get an account by ID",
                "parameters": [{"type": "string", "description": "Account ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["accounts"], "summary": "Update an account",
                "parameters": [{"type": "string", "description": "Account ID", "name": "id", "in": "path", "required": true},
                    {"description": "Changes", "name": "account", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["accounts"], "summary": "Delete an account",
                "parameters": [{"type": "string", "description": "Account ID", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}}
        },
        "/accounts/{id}/balance": {
            "get": {"produces": ["application/json"], "tags": ["accounts"], "summary": "Get an account balance at a date",
                "parameters": [{"type": "string", "description": "Account ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "RFC 3339 instant or YYYY-MM-DD", "name": "date", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/operations": {
            "get": {"produces": ["application/json"], "tags": ["operations"], "summary": "List operations",
                "parameters": [{"type": "string", "name": "account", "in": "query"}, {"type": "string", "name": "category", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}, {"type": "string", "name": "nextToken", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}},
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["operations"], "summary": "Add an operation",
                "parameters": [{"description": "Operation", "name": "operation", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/operations/{id}": {
            "put": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["operations"], "summary": "Update an operation",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true},
                    {"description": "Changes", "name": "operation", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"produces": ["application/json"], "tags": ["operations"], "summary": "Delete an operation",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/transfers": {
            "post": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["transfers"], "summary": "Add a transfer",
                "parameters": [{"description": "Transfer", "name": "transfer", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/transfers/{id}": {
            "put": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["transfers"], "summary": "Update a transfer",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true},
                    {"description": "Changes", "name": "transfer", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"produces": ["application/json"], "tags": ["transfers"], "summary": "Delete a transfer",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/balance/total": {
            "get": {"produces": ["application/json"], "tags": ["balance"], "summary": "Total balance in the base currency",
                "parameters": [{"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "name": "account", "in": "query"},
                    {"type": "string", "name": "date", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/currencies": {
            "get": {"produces": ["application/json"], "tags": ["currencies"], "summary": "List currencies", "responses": {"200": {"description": "OK"}}}
        },
        "/currencies/rates": {
            "get": {"produces": ["application/json"], "tags": ["currencies"], "summary": "Static rate table", "responses": {"200": {"description": "OK"}}}
        },
        "/currencies/{code}": {
            "get": {"produces": ["application/json"], "tags": ["currencies"], "summary": "Get a currency by code",
                "parameters": [{"type": "string", "name": "code", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Balance Ledger API",
	Description:      "Running balances, transfers and point-in-time totals.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
