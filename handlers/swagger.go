package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>SkillBoard API - Swagger</title>
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
  "info": { "title": "SkillBoard API", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } }
  },
  "security": [ { "bearer": [] } ],
  "paths": {
    "/api/auth/login": {
      "post": {
        "summary": "Exchange email and password for tokens",
        "security": [],
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "token, refreshToken and user" }, "400": { "description": "missing fields" }, "401": { "description": "invalid credentials" } }
      }
    },
    "/api/auth/refresh": {
      "post": { "summary": "Rotate a refresh token", "security": [], "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"refreshToken":{"type":"string"}}}}}}, "responses": { "200": { "description": "new token pair" }, "401": { "description": "invalid refresh" } } }
    },
    "/api/auth/logout": {
      "post": { "summary": "Revoke the access token and drop the refresh session", "responses": { "200": { "description": "logged out" } } }
    },
    "/api/auth/register": {
      "post": { "summary": "Create an account (Admin)", "responses": { "201": { "description": "token and user" }, "409": { "description": "email already used" } } }
    },
    "/api/auth/me": { "get": { "summary": "Current user", "responses": { "200": { "description": "user" } } } },
    "/api/users": {
      "get": { "summary": "List users", "parameters": [ {"name":"search","in":"query","schema":{"type":"string"}}, {"name":"role","in":"query","schema":{"type":"string","enum":["Admin","Utilisateur"]}} ], "responses": { "200": { "description": "users" } } },
      "post": { "summary": "Create a user (Admin)", "responses": { "201": { "description": "user" } } }
    },
    "/api/users/{id}": {
      "get": { "summary": "Get a user", "responses": { "200": { "description": "user" }, "404": { "description": "not found" } } },
      "put": { "summary": "Update a user (Admin)", "responses": { "200": { "description": "user" } } },
      "delete": { "summary": "Delete a user (Admin)", "responses": { "200": { "description": "id" } } }
    },
    "/api/skills": {
      "get": { "summary": "Skills of one user (userId) or all users", "parameters": [ {"name":"userId","in":"query","schema":{"type":"string"}} ], "responses": { "200": { "description": "skills" } } }
    },
    "/api/skills/{userId}": { "post": { "summary": "Add a skill (Admin)", "responses": { "201": { "description": "skill" } } } },
    "/api/skills/{userId}/{skillId}": {
      "put": { "summary": "Update a skill (Admin)", "responses": { "200": { "description": "skill" } } },
      "delete": { "summary": "Delete a skill (Admin)", "responses": { "200": { "description": "id" } } }
    },
    "/api/trainings": {
      "get": { "summary": "Trainings of one user (userId) or all users", "parameters": [ {"name":"userId","in":"query","schema":{"type":"string"}}, {"name":"status","in":"query","schema":{"type":"string","enum":["Planifié","En cours","Terminé"]}} ], "responses": { "200": { "description": "trainings" } } }
    },
    "/api/trainings/{userId}": { "post": { "summary": "Add a training (Admin)", "responses": { "201": { "description": "training" } } } },
    "/api/trainings/{userId}/{trainingId}": {
      "put": { "summary": "Update a training (Admin)", "responses": { "200": { "description": "training" } } },
      "delete": { "summary": "Delete a training (Admin)", "responses": { "200": { "description": "id" } } }
    },
    "/api/dashboard/metrics": { "get": { "summary": "Dashboard aggregates", "responses": { "200": { "description": "metrics" } } } },
    "/api/dashboard/report": { "get": { "summary": "PDF report", "responses": { "200": { "description": "application/pdf" } } } },
    "/health": { "get": { "summary": "Liveness check", "security": [], "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "security": [], "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
