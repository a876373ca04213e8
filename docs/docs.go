// Package docs holds the generated Swagger spec. Regenerate with
// `swag init -g cmd/server/main.go`.
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
        "/api/general_info": {
            "get": {
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Coin metadata and market caps",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/handler.generalInfoResponse"}
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/api/news": {
            "get": {
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Recent crypto news",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/domain.NewsArticle"}
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/api/prices": {
            "get": {
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Current USD prices",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/domain.CoinPriceRecord"}
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/api/sentiment": {
            "get": {
                "produces": ["application/json"],
                "tags": ["market"],
                "summary": "Social buzz scores",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/domain.SentimentRecord"}
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.CoinPriceRecord": {
            "type": "object",
            "properties": {
                "coin": {"type": "string"},
                "price_usd": {"type": "number"}
            }
        },
        "domain.NewsArticle": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "source": {"type": "string"},
                "link": {"type": "string"},
                "time_utc": {"type": "string"},
                "sentiment": {"type": "number"}
            }
        },
        "domain.SentimentRecord": {
            "type": "object",
            "properties": {
                "symbol": {"type": "string"},
                "score": {"type": "number"},
                "interpretation": {"type": "string"}
            }
        },
        "handler.generalInfoResponse": {
            "type": "object",
            "properties": {
                "coin": {"type": "string"},
                "full_name": {"type": "string"},
                "launch_date": {"type": "string"},
                "algorithm": {"type": "string"},
                "proof_type": {"type": "string"},
                "price_usd": {"type": "number"},
                "market_cap_usd": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Coinboard API",
	Description:      "Crypto market dashboard API with OpenTelemetry tracing.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
