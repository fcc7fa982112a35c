// Swagger document for the annotations on the handlers in this package.
package api

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
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Get the health status of the API",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/decode": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Decode a raw outline buffer. Use ?view=text for a plain text rendering.",
                "consumes": ["application/octet-stream"],
                "produces": ["application/json", "text/plain"],
                "tags": ["codec"],
                "summary": "Decode an outline",
                "parameters": [
                    {"type": "string", "description": "Rendering (json or text)", "name": "view", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/encode": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Encode a JSON outline into the binary format",
                "consumes": ["application/json"],
                "produces": ["application/octet-stream"],
                "tags": ["codec"],
                "summary": "Encode an outline",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/outlines": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "List all stored outlines",
                "produces": ["application/json"],
                "tags": ["outlines"],
                "summary": "List outlines",
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Validate and store a raw outline buffer",
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "tags": ["outlines"],
                "summary": "Store an outline",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/outlines/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Get a stored outline in decoded form",
                "produces": ["application/json"],
                "tags": ["outlines"],
                "summary": "Get an outline",
                "parameters": [{"type": "string", "description": "Outline id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Validate and replace a stored outline buffer",
                "consumes": ["application/octet-stream"],
                "produces": ["application/json"],
                "tags": ["outlines"],
                "summary": "Replace an outline",
                "parameters": [{"type": "string", "description": "Outline id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Delete a stored outline",
                "produces": ["application/json"],
                "tags": ["outlines"],
                "summary": "Delete an outline",
                "parameters": [{"type": "string", "description": "Outline id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/outlines/{id}/raw": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Get the stored outline buffer",
                "produces": ["application/octet-stream"],
                "tags": ["outlines"],
                "summary": "Get a raw outline",
                "parameters": [{"type": "string", "description": "Outline id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/outlines/{id}/diff/{other}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "description": "Unified diff between the text renderings of two stored outlines",
                "produces": ["application/json"],
                "tags": ["outlines"],
                "summary": "Diff two outlines",
                "parameters": [
                    {"type": "string", "description": "Outline id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Outline id to compare with", "name": "other", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "odsdb REST API",
	Description:      "REST API for decoding, encoding and storing ODS outline/sitemap buffers.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
