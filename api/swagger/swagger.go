package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Training Capacity API",
        "description": "Capacity planning and trainer auto-assignment for vocational training groups",
        "version": "1.0.0"
    },
    "basePath": "{{.BasePath}}",
    "schemes": ["http"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication"},
        {"name": "Trainers", "description": "Trainer roster and weekly capacity"},
        {"name": "Modules", "description": "Curriculum modules"},
        {"name": "Rooms"},
        {"name": "TrainingGroups", "description": "Cohorts and their assigned curriculum"},
        {"name": "Schedules"},
        {"name": "Competencies", "description": "Module/trainer competency matrix"},
        {"name": "Capacity", "description": "Workload, planning and exports"},
        {"name": "Dashboard"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Liveness check",
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
                    "503": {"description": "A backing store is unreachable"}
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate the administrator",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "401": {
                        "description": "Invalid credentials",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Get current user",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/trainers": {
            "get": {
                "tags": ["Trainers"],
                "summary": "List trainers",
                "parameters": [
                    {"name": "includeInactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "post": {
                "tags": ["Trainers"],
                "summary": "Create a trainer",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateTrainerRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/trainers/{id}": {
            "get": {
                "tags": ["Trainers"],
                "summary": "Get a trainer",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "put": {
                "tags": ["Trainers"],
                "summary": "Update a trainer",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdateTrainerRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "delete": {
                "tags": ["Trainers"],
                "summary": "Deactivate a trainer",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/modules": {
            "get": {
                "tags": ["Modules"],
                "summary": "List modules",
                "parameters": [
                    {"name": "includeInactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "post": {
                "tags": ["Modules"],
                "summary": "Create a module",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateModuleRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/modules/{id}": {
            "get": {
                "tags": ["Modules"],
                "summary": "Get a module",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "put": {
                "tags": ["Modules"],
                "summary": "Update a module",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdateModuleRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "delete": {
                "tags": ["Modules"],
                "summary": "Deactivate a module",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/rooms": {
            "get": {
                "tags": ["Rooms"],
                "summary": "List rooms",
                "parameters": [
                    {"name": "includeInactive", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "post": {
                "tags": ["Rooms"],
                "summary": "Create a room",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateRoomRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/rooms/{id}": {
            "get": {
                "tags": ["Rooms"],
                "summary": "Get a room",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "put": {
                "tags": ["Rooms"],
                "summary": "Update a room",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdateRoomRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "delete": {
                "tags": ["Rooms"],
                "summary": "Deactivate a room",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/training-groups": {
            "get": {
                "tags": ["TrainingGroups"],
                "summary": "List training groups",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "post": {
                "tags": ["TrainingGroups"],
                "summary": "Open a training group and assign its modules",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateTrainingGroupRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/training-groups/{id}": {
            "get": {
                "tags": ["TrainingGroups"],
                "summary": "Get a training group",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "put": {
                "tags": ["TrainingGroups"],
                "summary": "Update a training group",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdateTrainingGroupRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "delete": {
                "tags": ["TrainingGroups"],
                "summary": "Delete a training group",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/training-groups/{id}/schedules": {
            "get": {
                "tags": ["TrainingGroups"],
                "summary": "List a group's schedules in order",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/training-groups/{id}/recalculate": {
            "post": {
                "tags": ["TrainingGroups"],
                "summary": "Rerun the assignment pass for one group",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "412": {
                        "description": "Group already started",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List schedules",
                "parameters": [
                    {"name": "groupId", "in": "query", "type": "string", "required": false},
                    {"name": "trainerId", "in": "query", "type": "string", "required": false},
                    {"name": "moduleId", "in": "query", "type": "string", "required": false},
                    {"name": "status", "in": "query", "type": "string", "required": false}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "post": {
                "tags": ["Schedules"],
                "summary": "Add a schedule row by hand",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/CreateScheduleRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/schedules/{id}": {
            "put": {
                "tags": ["Schedules"],
                "summary": "Record progress or reassign a schedule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/UpdateScheduleRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "delete": {
                "tags": ["Schedules"],
                "summary": "Delete a schedule",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/module-trainer-assignments": {
            "get": {
                "tags": ["Competencies"],
                "summary": "List competency matrix cells",
                "parameters": [
                    {"name": "moduleId", "in": "query", "type": "string", "required": false},
                    {"name": "trainerId", "in": "query", "type": "string", "required": false}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "put": {
                "tags": ["Competencies"],
                "summary": "Set whether a trainer can teach a module",
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/SetAssignmentRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            },
            "delete": {
                "tags": ["Competencies"],
                "summary": "Remove a competency cell",
                "parameters": [
                    {"name": "moduleId", "in": "query", "type": "string", "required": true},
                    {"name": "trainerId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/auto-assign/trainers-modules": {
            "post": {
                "tags": ["Competencies"],
                "summary": "Match every active trainer to the modules their specialties cover",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/capacity/trainer-workload": {
            "get": {
                "tags": ["Capacity"],
                "summary": "Weekly load of every active trainer",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/capacity/room-occupancy": {
            "get": {
                "tags": ["Capacity"],
                "summary": "Weekly occupation of every active room",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/capacity/analysis": {
            "get": {
                "tags": ["Capacity"],
                "summary": "Full capacity analysis with recommendations",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/capacity/weekly-planning": {
            "get": {
                "tags": ["Capacity"],
                "summary": "Week-by-week projection of scheduled modules",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/capacity/monthly-planning": {
            "get": {
                "tags": ["Capacity"],
                "summary": "Month-by-month load against capacity",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/capacity/recalculate": {
            "post": {
                "tags": ["Capacity"],
                "summary": "Rerun the assignment pass for every untouched planned group",
                "parameters": [
                    {"name": "sync", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "202": {
                        "description": "Queued",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    },
                    "503": {
                        "description": "Queue unavailable",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        },
        "/capacity/export": {
            "get": {
                "tags": ["Capacity"],
                "summary": "Download a capacity report",
                "parameters": [
                    {
                        "name": "view",
                        "in": "query",
                        "type": "string",
                        "required": true,
                        "enum": ["trainers", "rooms", "monthly"]
                    },
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {
                        "description": "File",
                        "schema": {"type": "file"}
                    },
                    "400": {
                        "description": "Unknown view or format",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ],
                "produces": ["text/csv", "application/pdf"]
            }
        },
        "/dashboard/summary": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Capacity overview for the landing page",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/ResponseEnvelope"}
                    }
                },
                "security": [
                    {"BearerAuth": []}
                ]
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "Absence": {
            "type": "object",
            "properties": {
                "start": {"type": "string"},
                "end": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "CreateTrainerRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "specialties": {
                    "type": "array",
                    "items": {"type": "string"}
                },
                "maxHoursPerWeek": {"type": "integer"},
                "isActive": {"type": "boolean"},
                "absences": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Absence"}
                }
            }
        },
        "CreateModuleRequest": {
            "type": "object",
            "required": ["name", "type"],
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "totalHours": {"type": "integer", "minimum": 0, "maximum": 10000},
                "sessionsPerWeek": {"type": "integer", "minimum": 0, "maximum": 50},
                "hoursPerSession": {"type": "number", "description": "0 or between 0.25 and 24", "minimum": 0, "maximum": 24},
                "type": {"type": "string", "enum": ["theoretical", "practical"]},
                "isActive": {"type": "boolean"}
            }
        },
        "CreateRoomRequest": {
            "type": "object",
            "required": ["name", "type"],
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["classroom", "workshop"]},
                "capacity": {"type": "integer"},
                "equipment": {
                    "type": "array",
                    "items": {"type": "string"}
                },
                "isActive": {"type": "boolean"}
            }
        },
        "CreateTrainingGroupRequest": {
            "type": "object",
            "required": ["name", "startDate"],
            "properties": {
                "name": {"type": "string"},
                "participantCount": {"type": "integer"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "status": {"type": "string", "enum": ["planned", "active", "completed", "delayed"]},
                "delayDays": {"type": "integer"},
                "roomId": {"type": "string"}
            }
        },
        "CreateScheduleRequest": {
            "type": "object",
            "required": ["groupId", "moduleId", "trainerId"],
            "properties": {
                "groupId": {"type": "string"},
                "moduleId": {"type": "string"},
                "trainerId": {"type": "string"},
                "scheduledOrder": {"type": "integer"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "status": {"type": "string", "enum": ["planned", "active", "completed"]}
            }
        },
        "UpdateScheduleRequest": {
            "type": "object",
            "properties": {
                "trainerId": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "progress": {"type": "integer"},
                "hoursCompleted": {"type": "number"},
                "status": {"type": "string", "enum": ["planned", "active", "completed"]}
            }
        },
        "SetAssignmentRequest": {
            "type": "object",
            "required": ["moduleId", "trainerId", "canTeach"],
            "properties": {
                "moduleId": {"type": "string"},
                "trainerId": {"type": "string"},
                "canTeach": {"type": "boolean"}
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
        },
        "UpdateTrainerRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "specialties": {
                    "type": "array",
                    "items": {"type": "string"}
                },
                "maxHoursPerWeek": {"type": "integer"},
                "isActive": {"type": "boolean"},
                "absences": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Absence"}
                }
            }
        },
        "UpdateModuleRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "totalHours": {"type": "integer", "minimum": 0, "maximum": 10000},
                "sessionsPerWeek": {"type": "integer", "minimum": 0, "maximum": 50},
                "hoursPerSession": {"type": "number", "description": "0 or between 0.25 and 24", "minimum": 0, "maximum": 24},
                "type": {"type": "string", "enum": ["theoretical", "practical"]},
                "isActive": {"type": "boolean"}
            }
        },
        "UpdateRoomRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["classroom", "workshop"]},
                "capacity": {"type": "integer"},
                "equipment": {
                    "type": "array",
                    "items": {"type": "string"}
                },
                "isActive": {"type": "boolean"}
            }
        },
        "UpdateTrainingGroupRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "participantCount": {"type": "integer"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "status": {"type": "string", "enum": ["planned", "active", "completed", "delayed"]},
                "delayDays": {"type": "integer"},
                "roomId": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Training Capacity API",
	Description:      "Capacity planning and trainer auto-assignment for vocational training groups",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
