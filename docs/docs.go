// Package docs holds the OpenAPI description served at /swagger.
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
        "/login": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login page",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "303": {"description": "already signed in, redirected to /"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/register": {
            "get": {
                "produces": ["application/json"],
                "tags": ["register"],
                "summary": "Registration wizard state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.WizardResult"}}
                }
            }
        },
        "/register/step": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["register"],
                "summary": "Registration wizard step",
                "parameters": [
                    {
                        "description": "Wizard command and the current step's fields",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"type": "object"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.WizardResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/ports.WizardResult"}}
                }
            }
        },
        "/dashboard/{view}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Dashboard shell",
                "parameters": [
                    {"type": "string", "description": "Active view key", "name": "view", "in": "path"},
                    {"type": "string", "description": "Expanded parent keys, comma separated", "name": "expanded", "in": "query"},
                    {"type": "string", "description": "Parent key to toggle", "name": "toggle", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "303": {"description": "not signed in, redirected to /login"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/api/payments/checkout": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["payments"],
                "summary": "Start checkout",
                "parameters": [
                    {
                        "description": "Charge to pay",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.checkoutRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ports.CheckoutResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/api/visitors": {
            "get": {
                "produces": ["application/json"],
                "tags": ["visitors"],
                "summary": "List visitors",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/pago-exitoso": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pages"],
                "summary": "Payment result",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "303": {"description": "not signed in, redirected to /login"}
                }
            }
        },
        "/pase-visitante": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pages"],
                "summary": "Visitor pass verification",
                "parameters": [
                    {"type": "string", "description": "Base64 encoded pass", "name": "data", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object"}}
                }
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.checkoutRequest": {
            "type": "object",
            "required": ["mes"],
            "properties": {"id_pago": {"type": "integer"}, "mes": {"type": "string"}}
        },
        "ports.CheckoutResult": {
            "type": "object",
            "properties": {"session_id": {"type": "string"}, "publishable_key": {"type": "string"}}
        },
        "ports.WizardResult": {
            "type": "object",
            "properties": {
                "step": {"type": "integer"},
                "steps": {"type": "integer"},
                "data": {"type": "object"},
                "error": {"type": "string"},
                "completed": {"type": "boolean"},
                "redirect": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "SmartCondominium Portal Gateway",
	Description:      "Session, navigation and dashboard gateway in front of the SmartCondominium REST API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
