// FilePath: docs/docs.go

// Package docs holds the swagger document of the hub API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/comando": {
            "post": {
                "tags": ["commands"],
                "summary": "Set the LED token",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "parameters": [{"name": "command", "in": "body", "required": true, "schema": {"$ref": "#/definitions/resources.CommandRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/resources.LedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/mensagem": {
            "post": {
                "tags": ["commands"],
                "summary": "Set the pending message",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "parameters": [{"name": "command", "in": "body", "required": true, "schema": {"$ref": "#/definitions/resources.CommandRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/resources.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/status": {
            "get": {
                "tags": ["commands"],
                "summary": "Read the device status",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/commands.Status"}}
                }
            }
        },
        "/api/esp32": {
            "post": {
                "tags": ["records"],
                "summary": "Ingest a sensor record",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "record", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.SensorRecord"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/resources.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/resources.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/resources.ErrorResponse"}}
                }
            }
        },
        "/api/registros": {
            "get": {
                "tags": ["records"],
                "summary": "List sensor records",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.SensorRecord"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/api/registros/txt": {
            "get": {
                "tags": ["records"],
                "summary": "Export sensor records",
                "description": "Every stored record, oldest first, as a tab-separated attachment. NULL values are written as empty fields and numbers use their shortest form (25.0 is written 25).",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "tab-separated records", "schema": {"type": "string"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/api/dispositivos/{id}/ultimo": {
            "get": {
                "tags": ["records"],
                "summary": "Latest record of a device",
                "produces": ["application/json"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string", "description": "Device ID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SensorRecord"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/api/horarios": {
            "get": {
                "tags": ["schedules"],
                "summary": "List the schedule",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.ScheduleRow"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/api/horarios/editar": {
            "post": {
                "tags": ["schedules"],
                "summary": "Submit a schedule edit",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "edit", "in": "body", "required": true, "schema": {"type": "object"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/resources.EditResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/api/horarios/requisitar": {
            "post": {
                "tags": ["schedules"],
                "summary": "Request a schedule upload",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/resources.StatusResponse"}}
                }
            }
        },
        "/api/horarios/pull": {
            "get": {
                "tags": ["schedules"],
                "summary": "Device poll",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/resources.PollResponse"}}
                }
            }
        },
        "/api/horarios/salvar": {
            "post": {
                "tags": ["schedules"],
                "summary": "Save the schedule",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "batch", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ScheduleBatch"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/resources.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["system"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/resources.HealthResponse"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["system"],
                "summary": "Event counters",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/monitoring.Snapshot"}}
                }
            }
        }
    },
    "definitions": {
        "commands.Status": {
            "type": "object",
            "properties": {
                "led": {"type": "string"},
                "mensagem": {"type": "string"}
            }
        },
        "errors.APIError": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "message": {"type": "string"},
                "code": {"type": "integer"},
                "request_id": {"type": "string"},
                "details": {}
            }
        },
        "models.SensorRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "numero_pacote": {"type": "integer"},
                "fazenda": {"type": "string"},
                "dispositivo_id": {"type": "string"},
                "temperatura": {"type": "number"},
                "u1": {"type": "number"},
                "u2": {"type": "number"},
                "u3": {"type": "number"},
                "u4": {"type": "number"},
                "u5": {"type": "number"},
                "fruto": {"type": "string"},
                "data": {"type": "string"},
                "hora": {"type": "string"},
                "ip_local": {"type": "string"},
                "mac": {"type": "string"}
            }
        },
        "models.ScheduleRow": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "linha": {"type": "integer"},
                "hora_ligar": {"type": "string"},
                "hora_desligar": {"type": "string"},
                "dias": {"type": "string"}
            }
        },
        "models.ScheduleEntry": {
            "type": "object",
            "properties": {
                "linha": {"type": "integer"},
                "hora_ligar": {"type": "string"},
                "hora_desligar": {"type": "string"},
                "dias": {"type": "array", "items": {}}
            }
        },
        "models.ScheduleBatch": {
            "type": "object",
            "properties": {
                "horarios": {"type": "array", "items": {"$ref": "#/definitions/models.ScheduleEntry"}}
            }
        },
        "monitoring.Snapshot": {
            "type": "object",
            "properties": {
                "since": {"type": "string"},
                "events": {"type": "object", "additionalProperties": {"type": "integer"}},
                "last_seen": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "resources.CommandRequest": {
            "type": "object",
            "properties": {
                "led": {"type": "string"},
                "msg": {"type": "string"}
            }
        },
        "resources.LedResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "led": {"type": "string"}
            }
        },
        "resources.MessageResponse": {
            "type": "object",
            "properties": {
                "mensagem": {"type": "string"}
            }
        },
        "resources.StatusResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "resources.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "resources.EditResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "mensagem": {"type": "string"}
            }
        },
        "resources.PollResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dados": {}
            }
        },
        "resources.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "version": {"type": "string"},
                "mailbox": {"type": "string"}
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
	Title:            "fieldhub API",
	Description:      "Collects field device readings and relays schedules and commands between dashboard and device.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
