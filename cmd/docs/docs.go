// Package docs holds the swagger document served at /swagger.
// Regenerate with: swag init -g cmd/backoffice/main.go -o cmd/docs
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
        "/auth/token": {
            "post": {
                "description": "Issues a JWT for an existing back-office user. Only available outside production.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Issue an access token",
                "parameters": [
                    {
                        "description": "User to sign in as",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.TokenRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.TokenResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Unknown user",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "get the status of server.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "root"
                ],
                "summary": "Show the status of server.",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/handlers.healthResponse"
                        }
                    }
                }
            }
        },
        "/invoice-review/orders": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Lists invoice review orders with their active item count and net delta under the caller's triggers",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invoice-review"
                ],
                "summary": "List the invoice review queue",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.ReviewQueueEntryResponse"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/invoice-review/orders/{order_id}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Selects the order for the caller and returns its active items grouped by category, saved and invoiced items and the staged actions",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invoice-review"
                ],
                "summary": "Review one order",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Order ID",
                        "name": "order_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.OrderReviewResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Deletes the order and all of its line items",
                "tags": [
                    "invoice-review"
                ],
                "summary": "Remove a review order",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Order ID",
                        "name": "order_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/invoice-review/orders/{order_id}/apply": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Resolves an explicit line item to action mapping in one call",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invoice-review"
                ],
                "summary": "Apply an action mapping",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Order ID",
                        "name": "order_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Line item actions",
                        "name": "actions",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ApplyActionsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.SubmitResultResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/invoice-review/orders/{order_id}/staged/{line_item_id}": {
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Records invoice, save, dismiss or restore as the pending action of a line item",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invoice-review"
                ],
                "summary": "Stage an action for a line item",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Order ID",
                        "name": "order_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Line item ID",
                        "name": "line_item_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Action",
                        "name": "action",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.StageActionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.StagedActionsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invoice-review"
                ],
                "summary": "Drop a staged action",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Order ID",
                        "name": "order_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Line item ID",
                        "name": "line_item_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.StagedActionsResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/invoice-review/orders/{order_id}/submit": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Resolves the caller's staged actions for the order in one step and clears them",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invoice-review"
                ],
                "summary": "Submit staged actions",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Order ID",
                        "name": "order_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.SubmitResultResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/invoice-review/triggers": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invoice-review"
                ],
                "summary": "List review triggers",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.TriggerStateResponse"
                            }
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "invoice-review"
                ],
                "summary": "Toggle a review trigger",
                "parameters": [
                    {
                        "description": "Trigger toggle",
                        "name": "trigger",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.SetTriggerRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.TriggerStateResponse"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/orders": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Filters by status and free text (defaults to the session search query), sorts, and optionally groups by status",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "orders"
                ],
                "summary": "List a module's orders",
                "parameters": [
                    {
                        "enum": [
                            "billing",
                            "collections",
                            "commissions",
                            "referral_fees",
                            "estimates",
                            "storage",
                            "invoice_review",
                            "services"
                        ],
                        "type": "string",
                        "description": "Module",
                        "name": "module",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Free-text search",
                        "name": "q",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Status filter",
                        "name": "status",
                        "in": "query"
                    },
                    {
                        "enum": [
                            "orderNumber",
                            "name",
                            "billTo",
                            "orderDate",
                            "dueDate",
                            "amount",
                            "status"
                        ],
                        "type": "string",
                        "description": "Sort key",
                        "name": "sortBy",
                        "in": "query"
                    },
                    {
                        "enum": [
                            "asc",
                            "desc"
                        ],
                        "type": "string",
                        "description": "Sort direction",
                        "name": "sortDir",
                        "in": "query"
                    },
                    {
                        "enum": [
                            "status"
                        ],
                        "type": "string",
                        "description": "Grouping",
                        "name": "groupBy",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListOrdersResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/orders/summary": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Aggregates the transactions ledger per order of the module",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "orders"
                ],
                "summary": "Summarise billed and collected totals",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Module",
                        "name": "module",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.OrderSummaryResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/services/orders": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Synthesizes a new services order numbered SVC-<n>, optionally with initial lines",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "services"
                ],
                "summary": "Open a services order",
                "parameters": [
                    {
                        "description": "Order case",
                        "name": "case",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateOrderCaseRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.OrderCaseResponse"
                        }
                    },
                    "400": {
                        "description": "Validation errors per field",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/services/orders/{order_id}/lines": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "services"
                ],
                "summary": "List service lines",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Order ID",
                        "name": "order_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.ServiceLineResponse"
                            }
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Validates quantity (1-10000) and unit amount (0.01-1000000) and adds the line total to the order",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "services"
                ],
                "summary": "Append a service line",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Order ID",
                        "name": "order_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Service line",
                        "name": "line",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateServiceLineRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.ServiceLineResponse"
                        }
                    },
                    "400": {
                        "description": "Validation errors per field",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/session": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Returns the global search query, selected order, staged actions and trigger toggles",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "session"
                ],
                "summary": "Get the caller's session",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.SessionResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Sets the global search query and/or the selected order. Selecting a different order discards staged actions.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "session"
                ],
                "summary": "Update the caller's session",
                "parameters": [
                    {
                        "description": "Fields to change",
                        "name": "session",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateSessionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.SessionResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/settings/roles": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "settings"
                ],
                "summary": "List role defaults",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.RoleDefaultsResponse"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/settings/roles/{role}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "settings"
                ],
                "summary": "Get one role's defaults",
                "parameters": [
                    {
                        "enum": [
                            "admin",
                            "finance",
                            "collections",
                            "ops",
                            "readonly"
                        ],
                        "type": "string",
                        "description": "Role",
                        "name": "role",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.RoleDefaultsResponse"
                        }
                    },
                    "400": {
                        "description": "Unknown role",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Requires manage_permissions. Permissions not named in the body keep their value.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "settings"
                ],
                "summary": "Update one role's defaults",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Role",
                        "name": "role",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Permissions to change",
                        "name": "permissions",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateRoleDefaultsRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.RoleDefaultsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/settings/users": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "settings"
                ],
                "summary": "List users",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.UserResponse"
                            }
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/settings/users/{user_id}/access": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "settings"
                ],
                "summary": "Get a user's access rules",
                "parameters": [
                    {
                        "type": "string",
                        "description": "User ID",
                        "name": "user_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AccessRulesResponse"
                        }
                    },
                    "404": {
                        "description": "Unknown user",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Requires manage_permissions. Overrides are kept but ignored while useDefaults is true.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "settings"
                ],
                "summary": "Replace a user's access rules",
                "parameters": [
                    {
                        "type": "string",
                        "description": "User ID",
                        "name": "user_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Access rules",
                        "name": "rules",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateAccessRulesRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AccessRulesResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/settings/users/{user_id}/permissions": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "settings"
                ],
                "summary": "Get a user's effective permissions",
                "parameters": [
                    {
                        "type": "string",
                        "description": "User ID",
                        "name": "user_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.PermissionsResponse"
                        }
                    },
                    "404": {
                        "description": "Unknown user",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/settings/users/{user_id}/preferences": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Each preference is shown, hidden or locked (permission not held)",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "settings"
                ],
                "summary": "Get a user's display preferences",
                "parameters": [
                    {
                        "type": "string",
                        "description": "User ID",
                        "name": "user_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.PreferencesResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Users may edit their own preferences; editing another user's needs manage_permissions",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "settings"
                ],
                "summary": "Store a display preference",
                "parameters": [
                    {
                        "type": "string",
                        "description": "User ID",
                        "name": "user_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Preference",
                        "name": "preference",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdatePreferenceRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.PreferencesResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Not allowed or preference locked",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/transactions": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Filters by source, type, direction, date range and free text; sorted and token-paginated",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "transactions"
                ],
                "summary": "List transactions",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Source",
                        "name": "source",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Transaction type",
                        "name": "type",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Direction",
                        "name": "direction",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "From date (YYYY-MM-DD, inclusive)",
                        "name": "from",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "To date (YYYY-MM-DD, inclusive)",
                        "name": "to",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Free-text search",
                        "name": "q",
                        "in": "query"
                    },
                    {
                        "enum": [
                            "date",
                            "total",
                            "orderNumber"
                        ],
                        "type": "string",
                        "description": "Sort key",
                        "name": "sortBy",
                        "in": "query"
                    },
                    {
                        "enum": [
                            "asc",
                            "desc"
                        ],
                        "type": "string",
                        "description": "Sort direction",
                        "name": "sortDir",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "default": 50,
                        "description": "Page size",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Token from the previous page",
                        "name": "nextToken",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListTransactionsResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/transactions/export.csv": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Every filtered transaction, twelve fixed columns, file transactions_<YYYY-MM-DD>.csv",
                "produces": [
                    "text/csv"
                ],
                "tags": [
                    "transactions"
                ],
                "summary": "Export transactions as CSV",
                "responses": {
                    "200": {
                        "description": "CSV file",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/transactions/export.xlsx": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "tags": [
                    "transactions"
                ],
                "summary": "Export transactions as a workbook",
                "responses": {
                    "200": {
                        "description": "XLSX file",
                        "schema": {
                            "type": "file"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "apperrors.FieldErrors": {
            "type": "object",
            "additionalProperties": {
                "type": "string"
            }
        },
        "decimal.Decimal": {
            "type": "object"
        },
        "domain.Direction": {
            "type": "string",
            "enum": [
                "inbound",
                "outbound"
            ],
            "x-enum-varnames": [
                "Inbound",
                "Outbound"
            ]
        },
        "domain.LineItem": {
            "type": "object",
            "properties": {
                "lineItemID": {
                    "type": "string"
                },
                "orderID": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "delta": {
                    "$ref": "#/definitions/decimal.Decimal"
                },
                "cleared": {
                    "type": "boolean"
                },
                "saved": {
                    "type": "boolean"
                },
                "invoiced": {
                    "type": "boolean"
                },
                "occurredAt": {
                    "type": "string"
                }
            }
        },
        "domain.Module": {
            "type": "string",
            "enum": [
                "billing",
                "collections",
                "commissions",
                "referral_fees",
                "estimates",
                "storage",
                "invoice_review",
                "services"
            ],
            "x-enum-varnames": [
                "ModuleBilling",
                "ModuleCollections",
                "ModuleCommissions",
                "ModuleReferralFees",
                "ModuleEstimates",
                "ModuleStorage",
                "ModuleInvoiceReview",
                "ModuleServices"
            ]
        },
        "domain.OrderSummary": {
            "type": "object",
            "properties": {
                "orderNumber": {
                    "type": "string"
                },
                "orderName": {
                    "type": "string"
                },
                "billed": {
                    "$ref": "#/definitions/decimal.Decimal"
                },
                "collected": {
                    "$ref": "#/definitions/decimal.Decimal"
                },
                "outstanding": {
                    "$ref": "#/definitions/decimal.Decimal"
                }
            }
        },
        "domain.PermissionMap": {
            "type": "object",
            "additionalProperties": {
                "type": "boolean"
            }
        },
        "domain.PreferenceState": {
            "type": "string",
            "enum": [
                "shown",
                "hidden",
                "locked"
            ],
            "x-enum-varnames": [
                "PreferenceShown",
                "PreferenceHidden",
                "PreferenceLocked"
            ]
        },
        "domain.ReviewGroup": {
            "type": "object",
            "properties": {
                "category": {
                    "type": "string"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.LineItem"
                    }
                },
                "netDelta": {
                    "$ref": "#/definitions/decimal.Decimal"
                }
            }
        },
        "domain.Role": {
            "type": "string",
            "enum": [
                "admin",
                "finance",
                "collections",
                "ops",
                "readonly"
            ],
            "x-enum-varnames": [
                "RoleAdmin",
                "RoleFinance",
                "RoleCollections",
                "RoleOps",
                "RoleReadOnly"
            ]
        },
        "domain.StagedAction": {
            "type": "string",
            "enum": [
                "invoice",
                "save",
                "dismiss",
                "restore"
            ],
            "x-enum-varnames": [
                "ActionInvoice",
                "ActionSave",
                "ActionDismiss",
                "ActionRestore"
            ]
        },
        "domain.StagedActions": {
            "type": "object",
            "additionalProperties": {
                "$ref": "#/definitions/domain.StagedAction"
            }
        },
        "domain.TransactionType": {
            "type": "string",
            "enum": [
                "invoice",
                "payment",
                "commission",
                "referral_fee",
                "credit"
            ],
            "x-enum-varnames": [
                "TxnInvoice",
                "TxnPayment",
                "TxnCommission",
                "TxnReferralFee",
                "TxnCredit"
            ]
        },
        "domain.Trigger": {
            "type": "string",
            "enum": [
                "Price change",
                "Quantity change",
                "Deleted item",
                "Added item",
                "Rejected item",
                "Substitution",
                "Fee adjustment"
            ],
            "x-enum-varnames": [
                "TriggerPriceChange",
                "TriggerQuantityChange",
                "TriggerDeletedItem",
                "TriggerAddedItem",
                "TriggerRejectedItem",
                "TriggerSubstitution",
                "TriggerFeeAdjustment"
            ]
        },
        "dto.AccessRulesResponse": {
            "type": "object",
            "properties": {
                "userID": {
                    "type": "string"
                },
                "useDefaults": {
                    "type": "boolean"
                },
                "overrides": {
                    "$ref": "#/definitions/domain.PermissionMap"
                }
            }
        },
        "dto.ApplyActionsRequest": {
            "type": "object",
            "required": [
                "actions"
            ],
            "properties": {
                "actions": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "string"
                    }
                }
            }
        },
        "dto.CreateOrderCaseRequest": {
            "type": "object",
            "required": [
                "billTo",
                "name"
            ],
            "properties": {
                "name": {
                    "type": "string"
                },
                "billTo": {
                    "type": "string"
                },
                "billingCompany": {
                    "type": "string"
                },
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.CreateServiceLineRequest"
                    }
                }
            }
        },
        "dto.CreateServiceLineRequest": {
            "type": "object",
            "required": [
                "description"
            ],
            "properties": {
                "description": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer"
                },
                "unitAmount": {
                    "$ref": "#/definitions/decimal.Decimal"
                }
            }
        },
        "dto.LedgerTransactionResponse": {
            "type": "object",
            "properties": {
                "transactionID": {
                    "type": "string"
                },
                "source": {
                    "type": "string"
                },
                "date": {
                    "type": "string"
                },
                "orderNumber": {
                    "type": "string"
                },
                "orderName": {
                    "type": "string"
                },
                "billingCo": {
                    "type": "string"
                },
                "billTo": {
                    "type": "string"
                },
                "refCo": {
                    "type": "string"
                },
                "referrer": {
                    "type": "string"
                },
                "salesRep": {
                    "type": "string"
                },
                "transactionType": {
                    "$ref": "#/definitions/domain.TransactionType"
                },
                "total": {
                    "$ref": "#/definitions/decimal.Decimal"
                },
                "totalDisplay": {
                    "type": "string"
                },
                "direction": {
                    "$ref": "#/definitions/domain.Direction"
                }
            }
        },
        "dto.ListOrdersResponse": {
            "type": "object",
            "properties": {
                "module": {
                    "$ref": "#/definitions/domain.Module"
                },
                "searchQuery": {
                    "type": "string"
                },
                "total": {
                    "$ref": "#/definitions/decimal.Decimal"
                },
                "orders": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.OrderResponse"
                    }
                },
                "groups": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.OrderGroupResponse"
                    }
                }
            }
        },
        "dto.ListTransactionsResponse": {
            "type": "object",
            "properties": {
                "transactions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.LedgerTransactionResponse"
                    }
                },
                "nextToken": {
                    "type": "string"
                }
            }
        },
        "dto.OrderCaseResponse": {
            "type": "object",
            "properties": {
                "order": {
                    "$ref": "#/definitions/dto.OrderResponse"
                },
                "lines": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ServiceLineResponse"
                    }
                }
            }
        },
        "dto.OrderGroupResponse": {
            "type": "object",
            "properties": {
                "key": {
                    "type": "string"
                },
                "count": {
                    "type": "integer"
                },
                "total": {
                    "$ref": "#/definitions/decimal.Decimal"
                },
                "orders": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.OrderResponse"
                    }
                }
            }
        },
        "dto.OrderResponse": {
            "type": "object",
            "properties": {
                "orderID": {
                    "type": "string"
                },
                "orderNumber": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "module": {
                    "$ref": "#/definitions/domain.Module"
                },
                "billTo": {
                    "type": "string"
                },
                "billingCompany": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "secondaryStatus": {
                    "type": "string"
                },
                "orderDate": {
                    "type": "string"
                },
                "dueDate": {
                    "type": "string"
                },
                "amount": {
                    "$ref": "#/definitions/decimal.Decimal"
                },
                "amountDisplay": {
                    "type": "string"
                }
            }
        },
        "dto.OrderReviewResponse": {
            "type": "object",
            "properties": {
                "order": {
                    "$ref": "#/definitions/dto.OrderResponse"
                },
                "groups": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.ReviewGroup"
                    }
                },
                "saved": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.LineItem"
                    }
                },
                "invoiced": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.LineItem"
                    }
                },
                "activeNetDelta": {
                    "$ref": "#/definitions/decimal.Decimal"
                },
                "staged": {
                    "$ref": "#/definitions/domain.StagedActions"
                },
                "triggers": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.TriggerStateResponse"
                    }
                }
            }
        },
        "dto.OrderSummaryResponse": {
            "type": "object",
            "properties": {
                "module": {
                    "$ref": "#/definitions/domain.Module"
                },
                "summaries": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.OrderSummary"
                    }
                }
            }
        },
        "dto.PermissionsResponse": {
            "type": "object",
            "properties": {
                "userID": {
                    "type": "string"
                },
                "permissions": {
                    "$ref": "#/definitions/domain.PermissionMap"
                }
            }
        },
        "dto.PreferencesResponse": {
            "type": "object",
            "properties": {
                "userID": {
                    "type": "string"
                },
                "preferences": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/domain.PreferenceState"
                    }
                }
            }
        },
        "dto.ReviewQueueEntryResponse": {
            "type": "object",
            "properties": {
                "order": {
                    "$ref": "#/definitions/dto.OrderResponse"
                },
                "activeCount": {
                    "type": "integer"
                },
                "activeNetDelta": {
                    "$ref": "#/definitions/decimal.Decimal"
                }
            }
        },
        "dto.RoleDefaultsResponse": {
            "type": "object",
            "properties": {
                "role": {
                    "$ref": "#/definitions/domain.Role"
                },
                "permissions": {
                    "$ref": "#/definitions/domain.PermissionMap"
                }
            }
        },
        "dto.ServiceLineResponse": {
            "type": "object",
            "properties": {
                "serviceLineID": {
                    "type": "string"
                },
                "orderID": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "quantity": {
                    "type": "integer"
                },
                "unitAmount": {
                    "$ref": "#/definitions/decimal.Decimal"
                },
                "total": {
                    "$ref": "#/definitions/decimal.Decimal"
                },
                "createdAt": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                }
            }
        },
        "dto.SessionResponse": {
            "type": "object",
            "properties": {
                "userID": {
                    "type": "string"
                },
                "searchQuery": {
                    "type": "string"
                },
                "selectedOrderID": {
                    "type": "string"
                },
                "staged": {
                    "$ref": "#/definitions/domain.StagedActions"
                },
                "triggers": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.TriggerStateResponse"
                    }
                }
            }
        },
        "dto.SetTriggerRequest": {
            "type": "object",
            "required": [
                "enabled",
                "trigger"
            ],
            "properties": {
                "trigger": {
                    "type": "string"
                },
                "enabled": {
                    "type": "boolean"
                }
            }
        },
        "dto.StageActionRequest": {
            "type": "object",
            "required": [
                "action"
            ],
            "properties": {
                "action": {
                    "type": "string"
                }
            }
        },
        "dto.StagedActionsResponse": {
            "type": "object",
            "properties": {
                "orderID": {
                    "type": "string"
                },
                "staged": {
                    "$ref": "#/definitions/domain.StagedActions"
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "dto.SubmitResultResponse": {
            "type": "object",
            "properties": {
                "orderID": {
                    "type": "string"
                },
                "counts": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                },
                "submitted": {
                    "type": "integer"
                },
                "staged": {
                    "type": "integer"
                },
                "message": {
                    "type": "string"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.LineItem"
                    }
                }
            }
        },
        "dto.TokenRequest": {
            "type": "object",
            "required": [
                "userID"
            ],
            "properties": {
                "userID": {
                    "type": "string"
                }
            }
        },
        "dto.TokenResponse": {
            "type": "object",
            "properties": {
                "accessToken": {
                    "type": "string"
                },
                "tokenType": {
                    "type": "string"
                },
                "expiresIn": {
                    "type": "integer"
                }
            }
        },
        "dto.TriggerStateResponse": {
            "type": "object",
            "properties": {
                "trigger": {
                    "$ref": "#/definitions/domain.Trigger"
                },
                "enabled": {
                    "type": "boolean"
                }
            }
        },
        "dto.UpdateAccessRulesRequest": {
            "type": "object",
            "required": [
                "useDefaults"
            ],
            "properties": {
                "useDefaults": {
                    "type": "boolean"
                },
                "overrides": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "boolean"
                    }
                }
            }
        },
        "dto.UpdatePreferenceRequest": {
            "type": "object",
            "required": [
                "preference",
                "shown"
            ],
            "properties": {
                "preference": {
                    "type": "string"
                },
                "shown": {
                    "type": "boolean"
                }
            }
        },
        "dto.UpdateRoleDefaultsRequest": {
            "type": "object",
            "required": [
                "permissions"
            ],
            "properties": {
                "permissions": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "boolean"
                    }
                }
            }
        },
        "dto.UpdateSessionRequest": {
            "type": "object",
            "properties": {
                "searchQuery": {
                    "type": "string"
                },
                "selectedOrderID": {
                    "type": "string"
                }
            }
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {
                "userID": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "role": {
                    "$ref": "#/definitions/domain.Role"
                }
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                },
                "fields": {
                    "$ref": "#/definitions/apperrors.FieldErrors"
                }
            }
        },
        "handlers.healthResponse": {
            "type": "object",
            "properties": {
                "status": {
                    "type": "string"
                },
                "store": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "FinOps Back-office API",
	Description:      "Order modules, invoice review, transactions and settings for the finance back-office.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
