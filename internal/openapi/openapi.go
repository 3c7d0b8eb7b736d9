package openapi

func envelopeSchema(dataSchema map[string]any) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"code": map[string]any{"type": "integer"},
			"err":  map[string]any{"type": "string"},
			"data": dataSchema,
		},
		"required": []string{"code"},
	}
}

func jsonBody(schema map[string]any) map[string]any {
	return map[string]any{
		"required": true,
		"content": map[string]any{
			"application/json": map[string]any{"schema": schema},
		},
	}
}

func jsonResponse(description string, dataSchema map[string]any) map[string]any {
	return map[string]any{
		"description": description,
		"content": map[string]any{
			"application/json": map[string]any{"schema": envelopeSchema(dataSchema)},
		},
	}
}

func logRef() map[string]any        { return map[string]any{"$ref": "#/components/schemas/Log"} }
func logListSchema() map[string]any { return map[string]any{"type": "array", "items": logRef()} }

func dateParam(name string) map[string]any {
	return map[string]any{
		"name":   name,
		"in":     "query",
		"schema": map[string]any{"type": "string", "format": "date"},
	}
}

func idParam() map[string]any {
	return map[string]any{
		"name":     "id",
		"in":       "path",
		"required": true,
		"schema":   map[string]any{"type": "string", "format": "uuid"},
	}
}

// Spec returns a minimal OpenAPI 3 document for the MoodTrackr HTTP API.
// Hand-maintained to avoid codegen tooling.
func Spec() map[string]any {
	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "MoodTrackr API",
			"version": "1.0.0",
		},
		"paths": map[string]any{
			"/healthz": map[string]any{
				"get": map[string]any{
					"tags":        []string{"system"},
					"summary":     "Health check",
					"operationId": "healthz",
					"responses":   map[string]any{"200": map[string]any{"description": "OK"}},
				},
			},
			"/api/status": map[string]any{
				"get": map[string]any{
					"tags":        []string{"system"},
					"summary":     "Get system status",
					"operationId": "getStatus",
					"responses": map[string]any{
						"200": jsonResponse("Status", map[string]any{"type": "object"}),
					},
				},
			},
			"/api/auth/google": map[string]any{
				"post": map[string]any{
					"tags":        []string{"auth"},
					"summary":     "Exchange a Google ID token for a session token",
					"operationId": "googleLogin",
					"requestBody": jsonBody(map[string]any{
						"type":       "object",
						"properties": map[string]any{"token": map[string]any{"type": "string"}},
						"required":   []string{"token"},
					}),
					"responses": map[string]any{
						"200": jsonResponse("Session token and user profile", map[string]any{
							"type": "object",
							"properties": map[string]any{
								"token": map[string]any{"type": "string"},
								"user":  map[string]any{"$ref": "#/components/schemas/User"},
							},
						}),
						"400": map[string]any{"description": "Missing token"},
						"401": map[string]any{"description": "Invalid Google token"},
					},
				},
			},
			"/api/auth/user": map[string]any{
				"get": map[string]any{
					"tags":        []string{"auth"},
					"summary":     "Get the authenticated user",
					"operationId": "getUser",
					"security":    []map[string]any{{"bearerAuth": []string{}}},
					"responses": map[string]any{
						"200": jsonResponse("User", map[string]any{"$ref": "#/components/schemas/User"}),
						"401": map[string]any{"description": "Unauthorized"},
					},
				},
			},
			"/api/logs": map[string]any{
				"post": map[string]any{
					"tags":        []string{"logs"},
					"summary":     "Create a log for a calendar day",
					"operationId": "createLog",
					"security":    []map[string]any{{"bearerAuth": []string{}}},
					"requestBody": jsonBody(map[string]any{"$ref": "#/components/schemas/LogInput"}),
					"responses": map[string]any{
						"201": jsonResponse("Created", logRef()),
						"400": map[string]any{"description": "Invalid input"},
						"409": map[string]any{"description": "A log already exists for this date"},
					},
				},
				"get": map[string]any{
					"tags":        []string{"logs"},
					"summary":     "List logs, newest first",
					"operationId": "listLogs",
					"security":    []map[string]any{{"bearerAuth": []string{}}},
					"parameters": []map[string]any{
						dateParam("startDate"),
						dateParam("endDate"),
						{"name": "limit", "in": "query", "schema": map[string]any{"type": "integer"}},
					},
					"responses": map[string]any{
						"200": jsonResponse("Logs", logListSchema()),
					},
				},
			},
			"/api/logs/summary": map[string]any{
				"get": map[string]any{
					"tags":        []string{"logs"},
					"summary":     "Chart projections and averages for a date range",
					"operationId": "getLogsSummary",
					"security":    []map[string]any{{"bearerAuth": []string{}}},
					"parameters": []map[string]any{
						dateParam("startDate"),
						dateParam("endDate"),
						{"name": "metrics", "in": "query", "schema": map[string]any{"type": "string"}},
					},
					"responses": map[string]any{
						"200": jsonResponse("Summary", map[string]any{
							"type": "object",
							"properties": map[string]any{
								"logs":     map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Projection"}},
								"averages": map[string]any{"type": "object"},
								"period":   map[string]any{"type": "object"},
							},
						}),
					},
				},
			},
			"/api/logs/{id}": map[string]any{
				"get": map[string]any{
					"tags":        []string{"logs"},
					"summary":     "Get one log",
					"operationId": "getLog",
					"security":    []map[string]any{{"bearerAuth": []string{}}},
					"parameters":  []map[string]any{idParam()},
					"responses": map[string]any{
						"200": jsonResponse("Log", logRef()),
						"404": map[string]any{"description": "Not found"},
					},
				},
				"put": map[string]any{
					"tags":        []string{"logs"},
					"summary":     "Partially update a log (date immutable)",
					"operationId": "updateLog",
					"security":    []map[string]any{{"bearerAuth": []string{}}},
					"parameters":  []map[string]any{idParam()},
					"requestBody": jsonBody(map[string]any{"$ref": "#/components/schemas/LogInput"}),
					"responses": map[string]any{
						"200": jsonResponse("Updated", logRef()),
						"404": map[string]any{"description": "Not found"},
					},
				},
				"delete": map[string]any{
					"tags":        []string{"logs"},
					"summary":     "Delete a log",
					"operationId": "deleteLog",
					"security":    []map[string]any{{"bearerAuth": []string{}}},
					"parameters":  []map[string]any{idParam()},
					"responses": map[string]any{
						"200": map[string]any{"description": "Deleted"},
						"404": map[string]any{"description": "Not found"},
					},
				},
			},
			"/ws": map[string]any{
				"get": map[string]any{
					"tags":        []string{"realtime"},
					"summary":     "Realtime notification channel (websocket upgrade)",
					"operationId": "realtime",
					"parameters": []map[string]any{
						{"name": "token", "in": "query", "schema": map[string]any{"type": "string"}},
					},
					"responses": map[string]any{
						"101": map[string]any{"description": "Switching protocols"},
						"401": map[string]any{"description": "Handshake rejected"},
					},
				},
			},
		},
		"components": map[string]any{
			"securitySchemes": map[string]any{
				"bearerAuth": map[string]any{
					"type":         "http",
					"scheme":       "bearer",
					"bearerFormat": "JWT",
				},
			},
			"schemas": map[string]any{
				"User": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":      map[string]any{"type": "string", "format": "uuid"},
						"email":   map[string]any{"type": "string"},
						"name":    map[string]any{"type": "string"},
						"picture": map[string]any{"type": "string"},
					},
				},
				"LogInput": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"date":               map[string]any{"type": "string", "format": "date"},
						"mood":               map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
						"anxiety":            map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
						"stressLevel":        map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
						"sleepHours":         map[string]any{"type": "number", "minimum": 0, "maximum": 24},
						"sleepQuality":       map[string]any{"type": "string", "enum": []string{"poor", "fair", "good", "excellent"}},
						"sleepDisturbances":  map[string]any{"description": "bool or list of disturbance names"},
						"physicalActivity":   map[string]any{"description": "string or list of activities"},
						"activityDuration":   map[string]any{"type": "integer", "minimum": 0},
						"socialInteractions": map[string]any{"type": "string", "enum": []string{"none", "minimal", "moderate", "high"}},
						"depressionSymptoms": map[string]any{"description": "string or list of symptoms"},
						"anxietySymptoms":    map[string]any{"description": "string or list of symptoms"},
						"notes":              map[string]any{"type": "string"},
					},
					"required": []string{"mood", "anxiety"},
				},
				"Log": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":          map[string]any{"type": "string", "format": "uuid"},
						"userId":      map[string]any{"type": "string", "format": "uuid"},
						"date":        map[string]any{"type": "string", "format": "date-time"},
						"mood":        map[string]any{"type": "integer"},
						"anxiety":     map[string]any{"type": "integer"},
						"stressLevel": map[string]any{"type": "integer"},
					},
				},
				"Projection": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":            map[string]any{"type": "string"},
						"date":          map[string]any{"type": "string"},
						"formattedDate": map[string]any{"type": "string"},
						"mood":          map[string]any{"type": "integer"},
						"anxiety":       map[string]any{"type": "integer"},
						"stressLevel":   map[string]any{"type": "integer"},
						"sleepHours":    map[string]any{"type": "number"},
					},
				},
			},
		},
	}
}
