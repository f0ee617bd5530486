// Package docs registers the OpenAPI document served at /swagger/*.
// Regenerate with: swag init -g cmd/api/main.go
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
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/api/users/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a new user",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/api/users/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Login",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/users/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Get own profile",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Update own profile",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/auth/google/web": {"get": {"tags": ["auth"], "summary": "Start Google login", "responses": {"307": {"description": "Redirect"}}}},
        "/api/auth/google/callback": {"get": {"tags": ["auth"], "summary": "Google login callback", "responses": {"307": {"description": "Redirect"}}}},
        "/api/auth/me": {"get": {"tags": ["auth"], "summary": "Current session", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/auth/logout": {"get": {"tags": ["auth"], "summary": "Logout", "responses": {"307": {"description": "Redirect"}}}},
        "/api/products": {
            "get": {"tags": ["products"], "summary": "List products", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Create a product", "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}}
        },
        "/api/products/{id}": {
            "get": {"tags": ["products"], "summary": "Get a product", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Update a product", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Delete a product", "responses": {"204": {"description": "No Content"}}}
        },
        "/api/orders": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "List all orders", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Place an order", "responses": {"201": {"description": "Created"}, "200": {"description": "Idempotent replay"}}}
        },
        "/api/orders/user": {"get": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "List own orders", "responses": {"200": {"description": "OK"}}}},
        "/api/orders/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Get an order", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/api/orders/{id}/status": {"put": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Update order status", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/payments": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["payments"], "summary": "List all payments", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["payments"], "summary": "Pay an order", "responses": {"201": {"description": "Created"}}}
        },
        "/api/payments/user": {"get": {"security": [{"BearerAuth": []}], "tags": ["payments"], "summary": "List own payments", "responses": {"200": {"description": "OK"}}}},
        "/api/payments/{id}/status": {"put": {"security": [{"BearerAuth": []}], "tags": ["payments"], "summary": "Update payment status", "responses": {"200": {"description": "OK"}}}},
        "/api/reservations": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reservations"], "summary": "List all reservations", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["reservations"], "summary": "Book a table", "responses": {"201": {"description": "Created"}}}
        },
        "/api/reservations/user": {"get": {"security": [{"BearerAuth": []}], "tags": ["reservations"], "summary": "List own reservations", "responses": {"200": {"description": "OK"}}}},
        "/api/reservations/{id}": {"get": {"security": [{"BearerAuth": []}], "tags": ["reservations"], "summary": "Get a reservation", "responses": {"200": {"description": "OK"}}}},
        "/api/reservations/{id}/status": {"put": {"security": [{"BearerAuth": []}], "tags": ["reservations"], "summary": "Update reservation status", "responses": {"200": {"description": "OK"}}}},
        "/api/testimonials": {
            "get": {"tags": ["testimonials"], "summary": "List approved testimonials", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["testimonials"], "summary": "Submit a testimonial", "responses": {"201": {"description": "Created"}}}
        },
        "/api/testimonials/pending": {"get": {"security": [{"BearerAuth": []}], "tags": ["testimonials"], "summary": "Moderation queue", "responses": {"200": {"description": "OK"}}}},
        "/api/testimonials/{id}/approve": {"put": {"security": [{"BearerAuth": []}], "tags": ["testimonials"], "summary": "Approve a testimonial", "responses": {"200": {"description": "OK"}}}},
        "/api/locations": {
            "get": {"tags": ["locations"], "summary": "List locations", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["locations"], "summary": "Create a location", "responses": {"201": {"description": "Created"}}}
        },
        "/api/locations/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["locations"], "summary": "Update a location", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["locations"], "summary": "Delete a location", "responses": {"204": {"description": "No Content"}}}
        },
        "/api/notifications": {"post": {"security": [{"BearerAuth": []}], "tags": ["notifications"], "summary": "Send a notification", "responses": {"201": {"description": "Created"}}}},
        "/api/notifications/user": {"get": {"security": [{"BearerAuth": []}], "tags": ["notifications"], "summary": "List own notifications", "responses": {"200": {"description": "OK"}}}},
        "/api/notifications/{id}/read": {"put": {"security": [{"BearerAuth": []}], "tags": ["notifications"], "summary": "Mark a notification as read", "responses": {"200": {"description": "OK"}}}},
        "/api/activity-logs": {"get": {"security": [{"BearerAuth": []}], "tags": ["activity"], "summary": "List all activity", "responses": {"200": {"description": "OK"}}}},
        "/api/activity-logs/user": {"get": {"security": [{"BearerAuth": []}], "tags": ["activity"], "summary": "List own activity", "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Chicken System Restaurant API",
	Description:      "Ordering, reservations, payments and moderation for the Chicken System restaurant.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
