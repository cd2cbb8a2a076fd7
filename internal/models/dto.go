package models

import "time"

// Request/response shapes for the HTTP API

// CreateListRequest is the body for POST /api/lists
type CreateListRequest struct {
	Name string `json:"name"`
}

// RenameListRequest is the body for PATCH /api/lists/{listId}
type RenameListRequest struct {
	Name string `json:"name"`
}

// AddItemRequest is the body for POST /api/lists/{listId}/items
type AddItemRequest struct {
	Name           string   `json:"name"`
	EstimatedPrice *float64 `json:"estimatedPrice,omitempty"`
	Quantity       *int     `json:"quantity,omitempty"`
}

// UpdateItemRequest is the body for PATCH /api/lists/{listId}/items
type UpdateItemRequest struct {
	ItemID    string `json:"itemId"`
	Completed bool   `json:"completed"`
}

// ShareListRequest is the body for POST /api/lists/{listId}/share
type ShareListRequest struct {
	TargetUserID string `json:"targetUserId"`
	CanEdit      *bool  `json:"canEdit,omitempty"`
}

// RemoveShareRequest is the body for DELETE /api/lists/{listId}/share
type RemoveShareRequest struct {
	TargetUserID string `json:"targetUserId"`
}

// ShareWithFamilyRequest is the body for POST /api/lists/{listId}/share/family
type ShareWithFamilyRequest struct {
	FamilyID string `json:"familyId"`
}

// CreateFamilyRequest is the body for POST /api/families
type CreateFamilyRequest struct {
	Name string `json:"name"`
}

// AddMemberRequest is the body for POST /api/families/{familyId}/members
type AddMemberRequest struct {
	TargetUserID string `json:"targetUserId"`
}

// RemoveMemberRequest is the body for DELETE /api/families/{familyId}/members
type RemoveMemberRequest struct {
	TargetUserID string `json:"targetUserId"`
}

// ListResponse is a list with its items and, for the owner, its shares
type ListResponse struct {
	*List
	Shares []*ListShare `json:"shares,omitempty"`
}

// HealthResponse is the health check payload
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
