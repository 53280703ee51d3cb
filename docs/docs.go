package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "schemes": {{ marshal .Schemes }},
    "paths": {
        "/viewall": {
            "get": {
                "tags": ["records"],
                "summary": "List every record",
                "produces": ["application/json"],
                "responses": {
                    "200": {
                        "description": "Records in stored order",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Record"}}
                    }
                }
            }
        },
        "/createQ": {
            "post": {
                "tags": ["records"],
                "summary": "Append a record",
                "description": "The body is a raw entry such as \"What is 781 + 820?|1601|0540, 6172, 999, -835\"",
                "consumes": ["text/plain"],
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "Success!"},
                    "400": {"description": "Failure!"}
                }
            }
        },
        "/deleteQ": {
            "delete": {
                "tags": ["records"],
                "summary": "Delete every record with a question",
                "description": "The body is the question text, e.g. \"781 + 820?\"",
                "consumes": ["text/plain"],
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "Success!"}
                }
            }
        },
        "/editQ": {
            "post": {
                "tags": ["records"],
                "summary": "Replace every record with a question",
                "consumes": ["application/json"],
                "produces": ["text/plain"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ports.EditRecordRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Success!"},
                    "400": {"description": "Failure!"}
                }
            }
        },
        "/filter": {
            "post": {
                "tags": ["records"],
                "summary": "Find records by field",
                "description": "operation is FIND, GT or LT; attribute is question, answer or distractors",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ports.FilterRecordsRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Matching records",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/entities.Record"}}
                    },
                    "400": {
                        "description": "A single object whose question is Failure!",
                        "schema": {"type": "array", "items": {"type": "object", "additionalProperties": {"type": "string"}}}
                    }
                }
            }
        },
        "/sort": {
            "post": {
                "tags": ["records"],
                "summary": "Reorder and persist the records",
                "description": "operation is LT (ascending) or GT (descending)",
                "consumes": ["application/json"],
                "produces": ["text/plain"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "request",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ports.SortRecordsRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Success!"},
                    "400": {"description": "Failure!"}
                }
            }
        }
    },
    "definitions": {
        "entities.Record": {
            "type": "object",
            "properties": {
                "question": {"type": "string", "example": "1754 - 3936?"},
                "answer": {"type": "string", "example": "-2182"},
                "distractors": {"type": "string", "example": "3176, 6529, 6903"}
            }
        },
        "ports.EditRecordRequest": {
            "type": "object",
            "required": ["question", "newQ"],
            "properties": {
                "question": {"type": "string"},
                "newQ": {"type": "string"}
            }
        },
        "ports.FilterRecordsRequest": {
            "type": "object",
            "required": ["operation", "attribute"],
            "properties": {
                "operation": {"type": "string", "enum": ["FIND", "GT", "LT"]},
                "attribute": {"type": "string", "enum": ["question", "answer", "distractors"]},
                "value": {"type": "string"}
            }
        },
        "ports.SortRecordsRequest": {
            "type": "object",
            "required": ["operation", "attribute"],
            "properties": {
                "operation": {"type": "string", "enum": ["LT", "GT"]},
                "attribute": {"type": "string", "enum": ["question", "answer", "distractors"]}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "QuestionBank API",
	Description:      "Question/answer/distractor record store",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
