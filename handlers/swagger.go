package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRouter) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>signupdesk API docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "signupdesk", "version": "v0.1.0" },
  "components": { "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer" } } },
  "paths": {
    "/submit": {
      "post": {
        "summary": "Store a public form submission",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"email":{"type":"string"},"phone":{"type":"string"},"interests":{"type":"string"},"optin":{"type":"boolean"}}}}}},
        "responses": { "200": { "description": "stored" }, "500": { "description": "storage failure" } }
      }
    },
    "/api/admin/login": {
      "post": {
        "summary": "Admin login",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"username":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "token returned" }, "401": { "description": "invalid credentials" } }
      }
    },
    "/api/admin/logout": { "post": { "summary": "Revoke the current admin token", "security": [{"bearer": []}], "responses": { "200": { "description": "logged out" } } } },
    "/api/customers": { "get": { "summary": "List all submissions", "security": [{"bearer": []}], "responses": { "200": { "description": "records" }, "401": { "description": "unauthorized" } } } },
    "/api/customers/{id}": { "delete": { "summary": "Delete one submission (idempotent)", "security": [{"bearer": []}], "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "deleted" } } } },
    "/api/customers/bulk-delete": { "post": { "summary": "Delete many submissions", "security": [{"bearer": []}], "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"ids":{"type":"array","items":{"type":"string"}}}}}}}, "responses": { "200": { "description": "count = ids requested, removed = ids found" } } } },
    "/api/customers/export": { "get": { "summary": "Export a JSON snapshot", "security": [{"bearer": []}], "responses": { "200": { "description": "snapshot or presigned url" } } } },
    "/api/send-sms": {
      "post": {
        "summary": "Select recipients and dispatch an SMS broadcast",
        "security": [{"bearer": []}],
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"mode":{"type":"string","enum":["all_optin","interest","selected","manual"]},"message":{"type":"string"},"interest":{"type":"string"},"ids":{"type":"array","items":{"type":"string"}},"numbers":{"type":"array","items":{"type":"string"}}}}}}},
        "responses": { "200": { "description": "sent" }, "400": { "description": "missing message or invalid mode" } }
      }
    },
    "/api/sms/history": { "get": { "summary": "Recent dispatches", "security": [{"bearer": []}], "responses": { "200": { "description": "dispatches, newest first" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
