// Package docs holds the OpenAPI description served under /swagger.
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
        "/snapshot": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["snapshot"],
                "summary": "Full wellness snapshot of the caller",
                "parameters": [
                    {"type": "string", "description": "IANA time zone", "name": "X-Timezone", "in": "header"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Snapshot"}}}
            }
        },
        "/checkins": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["checkins"],
                "summary": "Check-ins, newest first",
                "parameters": [
                    {"type": "integer", "description": "max items (0 = all)", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.CheckIn"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkins"],
                "summary": "Record the daily check-in",
                "parameters": [
                    {"type": "string", "description": "IANA time zone", "name": "X-Timezone", "in": "header"},
                    {"description": "Answers; date defaults to today", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.CheckInAnswers"}}
                ],
                "responses": {
                    "200": {"description": "already checked in that day"},
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/journal": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["journal"],
                "summary": "Journal entries, newest first",
                "parameters": [
                    {"type": "integer", "description": "max items (0 = all)", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.JournalEntry"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["journal"],
                "summary": "Write a journal entry",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/triggers": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["triggers"],
                "summary": "Triggers, newest first",
                "parameters": [
                    {"type": "integer", "description": "max items (0 = all)", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["triggers"],
                "summary": "Log a trigger",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/milestones": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["milestones"],
                "summary": "Milestone table with unlock state",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stats/overview": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Streak, success rate and counts",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stats/weekly": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "This week's journal and check-in summary",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stats/calendar": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Check-in quality per day of a month",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM, defaults to the current month", "name": "month", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        }
    },
    "definitions": {
        "domain.CheckInAnswers": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2026-10-15"},
                "reacted_calmly": {"type": "boolean"},
                "avoided_snapping": {"type": "boolean"},
                "was_kinder": {"type": "boolean"},
                "positive_self_talk": {"type": "boolean"},
                "felt_relaxed": {"type": "boolean"}
            }
        },
        "domain.CheckIn": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "reacted_calmly": {"type": "boolean"},
                "avoided_snapping": {"type": "boolean"},
                "was_kinder": {"type": "boolean"},
                "positive_self_talk": {"type": "boolean"},
                "felt_relaxed": {"type": "boolean"},
                "created_at": {"type": "string"}
            }
        },
        "domain.JournalEntry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "timestamp": {"type": "string"},
                "gratitude": {"type": "string"},
                "reflection": {"type": "string"},
                "emotion": {"type": "string"},
                "emotion_glyph": {"type": "string"}
            }
        },
        "domain.Snapshot": {
            "type": "object",
            "properties": {
                "check_ins": {"type": "array", "items": {"$ref": "#/definitions/domain.CheckIn"}},
                "journal_entries": {"type": "array", "items": {"$ref": "#/definitions/domain.JournalEntry"}},
                "triggers": {"type": "array", "items": {"type": "object"}},
                "current_streak": {"type": "integer"},
                "longest_streak": {"type": "integer"},
                "milestones": {"type": "array", "items": {"type": "object"}},
                "updated_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kanso Wellness API",
	Description:      "Daily check-ins, journal, triggers, streaks and milestones.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
