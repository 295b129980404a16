// Package docs holds the OpenAPI document served by the Swagger UI.
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
        "/health": {
            "get": {"tags": ["health"], "summary": "Readiness check", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/leads": {
            "get": {
                "tags": ["leads"],
                "summary": "List leads",
                "parameters": [
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "city", "in": "query"},
                    {"type": "string", "name": "plan_type", "in": "query"},
                    {"type": "string", "name": "temperature", "in": "query"},
                    {"type": "integer", "name": "broker_id", "in": "query"},
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query"},
                    {"type": "string", "name": "order", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/service.LeadListResult"}}}
            },
            "post": {
                "tags": ["leads"],
                "summary": "Create lead",
                "consumes": ["application/json"],
                "parameters": [{"name": "lead", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.LeadInput"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Lead"}}}
            }
        },
        "/leads/{id}": {
            "get": {"tags": ["leads"], "summary": "Get lead", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Lead"}}}},
            "put": {"tags": ["leads"], "summary": "Update lead", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"name": "lead", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.LeadInput"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Lead"}}}},
            "delete": {"tags": ["leads"], "summary": "Delete lead", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/leads/import": {
            "post": {"tags": ["imports"], "summary": "Import leads from CSV", "consumes": ["multipart/form-data"], "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}], "responses": {"201": {"description": "Created"}, "413": {"description": "Request Entity Too Large"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/leads/import/template": {
            "get": {"tags": ["imports"], "summary": "Download the import template", "produces": ["text/csv"], "responses": {"200": {"description": "OK"}}}
        },
        "/imports": {
            "get": {"tags": ["imports"], "summary": "List import batches", "responses": {"200": {"description": "OK"}}}
        },
        "/imports/{id}/leads": {
            "get": {"tags": ["imports"], "summary": "Preview the leads of an archived import", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/brokers": {
            "get": {"tags": ["brokers"], "summary": "List brokers", "parameters": [{"type": "string", "name": "q", "in": "query"}, {"type": "boolean", "name": "active", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["brokers"], "summary": "Create broker", "parameters": [{"name": "broker", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.BrokerInput"}}], "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/brokers/{id}/avatar": {
            "put": {"tags": ["brokers"], "summary": "Upload broker avatar", "consumes": ["multipart/form-data"], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"type": "file", "name": "file", "in": "formData", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/dashboard": {
            "get": {"tags": ["insights"], "summary": "Dashboard metrics", "parameters": [{"type": "string", "name": "period", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/reports": {
            "get": {"tags": ["insights"], "summary": "Reports", "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "model.Lead": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "city": {"type": "string"},
                "plan_type": {"type": "string"},
                "broker_id": {"type": "integer"},
                "broker_name": {"type": "string"},
                "source": {"type": "string"},
                "temperature": {"type": "string"},
                "status": {"type": "string"},
                "notes": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "model.LeadInput": {
            "type": "object",
            "required": ["name", "email", "phone"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "city": {"type": "string"},
                "plan_type": {"type": "string"},
                "broker_id": {"type": "integer"},
                "source": {"type": "string"},
                "temperature": {"type": "string"},
                "status": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "model.BrokerInput": {
            "type": "object",
            "required": ["name", "email", "phone"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "role": {"type": "string"},
                "active": {"type": "boolean"}
            }
        },
        "service.LeadListResult": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/model.Lead"}},
                "total": {"type": "integer"}
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
	Title:            "ConectaLeads API",
	Description:      "Lead management for health-insurance brokerages.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
