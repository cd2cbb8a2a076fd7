package handlers

import (
	"encoding/json"
	"net/http"
)

// DocsHandler serves the OpenAPI document backing the swagger UI
type DocsHandler struct{}

// NewDocsHandler creates a new DocsHandler
func NewDocsHandler() *DocsHandler {
	return &DocsHandler{}
}

// OpenAPIDoc serves the API description consumed by the swagger UI
func (h *DocsHandler) OpenAPIDoc(w http.ResponseWriter, r *http.Request) {
	doc := map[string]interface{}{
		"swagger": "2.0",
		"info": map[string]interface{}{
			"title":       "Shopping List API",
			"description": "Shared shopping lists with per-user and family sharing",
			"version":     "1.0",
		},
		"basePath": "/",
		"paths": map[string]interface{}{
			"/api/health": map[string]interface{}{
				"get": operation("health", "Health check"),
			},
			"/api/lists": map[string]interface{}{
				"get":  operation("lists", "List owned shopping lists"),
				"post": operation("lists", "Create a shopping list"),
			},
			"/api/lists/shared": map[string]interface{}{
				"get": operation("lists", "Lists shared with the caller"),
			},
			"/api/lists/{listId}": map[string]interface{}{
				"get":    operation("lists", "Get a shopping list"),
				"patch":  operation("lists", "Rename a shopping list"),
				"delete": operation("lists", "Delete a shopping list"),
			},
			"/api/lists/{listId}/items": map[string]interface{}{
				"post":  operation("items", "Add an item"),
				"patch": operation("items", "Update an item's completed state"),
			},
			"/api/lists/{listId}/share": map[string]interface{}{
				"post":   operation("sharing", "Share a list with a user"),
				"get":    operation("sharing", "List shares on a list"),
				"delete": operation("sharing", "Remove a share"),
			},
			"/api/lists/{listId}/share/family": map[string]interface{}{
				"post": operation("sharing", "Share a list with a family"),
			},
			"/api/families": map[string]interface{}{
				"get":  operation("families", "List the caller's families"),
				"post": operation("families", "Create a family"),
			},
			"/api/families/{familyId}/members": map[string]interface{}{
				"get":    operation("families", "List family members"),
				"post":   operation("families", "Add a family member"),
				"delete": operation("families", "Remove a family member"),
			},
			"/api/webhook/stripe": map[string]interface{}{
				"post": operation("webhooks", "Stripe webhook"),
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

func operation(tag, summary string) map[string]interface{} {
	return map[string]interface{}{
		"tags":    []string{tag},
		"summary": summary,
		"responses": map[string]interface{}{
			"200": map[string]interface{}{"description": "OK"},
		},
	}
}
