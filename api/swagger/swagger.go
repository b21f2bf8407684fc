package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Student Registry API",
        "description": "Student registration management backend",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Students", "description": "Student details, courses and application statuses"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List all student details",
                "responses": {
                    "200": {"description": "Student details", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Register a student with courses and statuses",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Registered detail", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation or consistency failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/search": {
            "post": {
                "tags": ["Students"],
                "summary": "Search student details by criteria",
                "parameters": [
                    {"name": "criteria", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentSearchCriteria"}}
                ],
                "responses": {
                    "200": {"description": "Matching details", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid criteria", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/export": {
            "get": {
                "tags": ["Students"],
                "summary": "Export the student roster as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Rendered file"},
                    "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get one student detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Student detail", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update a student detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "kana_name": {"type": "string"},
                "nickname": {"type": "string"},
                "email": {"type": "string"},
                "area": {"type": "string"},
                "age": {"type": "integer"},
                "sex": {"type": "string"},
                "remark": {"type": "string"},
                "is_deleted": {"type": "boolean"}
            }
        },
        "StudentCourse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "student_id": {"type": "string"},
                "course_id": {"type": "string"},
                "course_name": {"type": "string"},
                "start_date": {"type": "string", "format": "date-time"},
                "end_date": {"type": "string", "format": "date-time"}
            }
        },
        "CourseStatus": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "student_id": {"type": "string"},
                "course_id": {"type": "string"},
                "status": {"type": "string", "enum": ["仮申込", "本申込", "受講中", "受講終了"]}
            }
        },
        "StudentDetail": {
            "type": "object",
            "properties": {
                "student": {"$ref": "#/definitions/Student"},
                "courses": {"type": "array", "items": {"$ref": "#/definitions/StudentCourse"}},
                "statuses": {"type": "array", "items": {"$ref": "#/definitions/CourseStatus"}}
            }
        },
        "StudentSearchCriteria": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "kana_name": {"type": "string"},
                "nickname": {"type": "string"},
                "area": {"type": "string"},
                "age_min": {"type": "integer"},
                "age_max": {"type": "integer"},
                "sex": {"type": "string"},
                "course_name": {"type": "string"},
                "status": {"type": "string"},
                "is_deleted": {"type": "boolean"}
            }
        },
        "RegisterStudentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "kana_name": {"type": "string"},
                "nickname": {"type": "string"},
                "email": {"type": "string"},
                "area": {"type": "string"},
                "age": {"type": "integer"},
                "sex": {"type": "string"},
                "remark": {"type": "string"},
                "courses": {"type": "array", "items": {"type": "object", "properties": {"course_id": {"type": "string"}, "course_name": {"type": "string"}}}},
                "statuses": {"type": "array", "items": {"type": "object", "properties": {"course_id": {"type": "string"}, "status": {"type": "string"}}}}
            }
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "kana_name": {"type": "string"},
                "nickname": {"type": "string"},
                "email": {"type": "string"},
                "area": {"type": "string"},
                "age": {"type": "integer"},
                "sex": {"type": "string"},
                "remark": {"type": "string"},
                "is_deleted": {"type": "boolean"},
                "courses": {"type": "array", "items": {"$ref": "#/definitions/StudentCourse"}},
                "statuses": {"type": "array", "items": {"$ref": "#/definitions/CourseStatus"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
