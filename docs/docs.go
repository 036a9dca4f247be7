// Package docs registers the OpenAPI documents served by the swagger UI
// endpoint of each service mode.
package docs

import "github.com/swaggo/swag"

const docTemplateStorefront = `{
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
        "/auth/unlock": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange the PIN for an unlock token",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid pin"}
                }
            }
        },
        "/pins": {
            "get": {
                "tags": ["pins"],
                "summary": "List active delivery pins",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["pins"],
                "summary": "Drop a new delivery pin",
                "responses": {
                    "201": {"description": "Created"},
                    "401": {"description": "Unlock required"},
                    "422": {"description": "Invalid coordinates"}
                }
            }
        },
        "/pins/import": {
            "post": {
                "tags": ["pins"],
                "summary": "Bulk import pins (replace or append)",
                "responses": {
                    "201": {"description": "Created"},
                    "401": {"description": "Unlock required"},
                    "422": {"description": "Empty batch or invalid coordinates"}
                }
            }
        },
        "/pins/{pin_id}": {
            "delete": {
                "tags": ["pins"],
                "summary": "Remove a pin from the board",
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Pin not found"}
                }
            }
        },
        "/pins/{pin_id}/complete": {
            "post": {
                "tags": ["pins"],
                "summary": "Mark a pin delivered and move it to history",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Pin not found"}
                }
            }
        },
        "/history": {
            "get": {
                "tags": ["pins"],
                "summary": "List recent deliveries",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/orders": {
            "get": {
                "tags": ["orders"],
                "summary": "List submitted orders",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["orders"],
                "summary": "Submit a customer cart",
                "responses": {
                    "201": {"description": "Created"},
                    "422": {"description": "Empty or invalid cart"}
                }
            }
        },
        "/orders/{order_id}": {
            "get": {
                "tags": ["orders"],
                "summary": "Get a single order",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Order not found"}
                }
            }
        }
    }
}`

const docTemplateNavigator = `{
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
        "/ws/drivers/{driver_id}": {
            "get": {
                "tags": ["drivers"],
                "summary": "WebSocket tracking and guidance stream for a driver",
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "400": {"description": "Invalid driver id"}
                }
            }
        }
    }
}`

var SwaggerInfoStorefront = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Storefront Service API",
	Description:      "Delivery pin board, history and cart orders.",
	InfoInstanceName: "storefront",
	SwaggerTemplate:  docTemplateStorefront,
}

var SwaggerInfoNavigator = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Navigator Service API",
	Description:      "Driver position streaming and turn-by-turn guidance.",
	InfoInstanceName: "navigator",
	SwaggerTemplate:  docTemplateNavigator,
}

func init() {
	swag.Register(SwaggerInfoStorefront.InstanceName(), SwaggerInfoStorefront)
	swag.Register(SwaggerInfoNavigator.InstanceName(), SwaggerInfoNavigator)
}
