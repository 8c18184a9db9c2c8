// Package docs registers the swagger specification for the API.
// Code generated by swag init; regenerate after changing handler annotations.
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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/courses": {
            "get": {
                "tags": ["courses"],
                "summary": "List published courses",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/courses/{slug}": {
            "get": {
                "tags": ["courses"],
                "summary": "Get a published course by slug",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/admin/users": {
            "get": {
                "tags": ["admin"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden"}
                }
            },
            "post": {
                "tags": ["admin"],
                "summary": "Create a student or mentor",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/admin/users/{id}": {
            "get": {
                "tags": ["admin"],
                "summary": "Get a user",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "tags": ["admin"],
                "summary": "Update a user",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["admin"],
                "summary": "Delete a user",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/admin/stats": {
            "get": {
                "tags": ["admin"],
                "summary": "Platform stats",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/courses": {
            "get": {
                "tags": ["admin"],
                "summary": "List all courses",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["admin"],
                "summary": "Create a course",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/admin/courses/{id}": {
            "get": {
                "tags": ["admin"],
                "summary": "Get a course",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "tags": ["admin"],
                "summary": "Update a course",
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}
            },
            "delete": {
                "tags": ["admin"],
                "summary": "Delete a course",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/payments/orders": {
            "post": {
                "tags": ["payments"],
                "summary": "Create a payment order",
                "responses": {"201": {"description": "Created"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/payments/verify": {
            "post": {
                "tags": ["payments"],
                "summary": "Verify a payment",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/enrollments": {
            "get": {
                "tags": ["payments"],
                "summary": "List the caller's enrollments",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "BeingIITian API",
	Description:      "Education platform API with cookie-session authentication, a course catalog, and role-based admin surface.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
