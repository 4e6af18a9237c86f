// model/requests.go
package model

// EnforceRequest is the composed authorization question asked by the
// resolver layer.
type EnforceRequest struct {
	Subject string `json:"subject" binding:"required"`
	Level   string `json:"level" binding:"required"`
	Object  string `json:"object" binding:"required"`
	Action  string `json:"action" binding:"required"`
}

// GrantRequest assigns a role to a subject over an object at a level.
type GrantRequest struct {
	Level   string `json:"level" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Object  string `json:"object" binding:"required"`
	Role    string `json:"role" binding:"required"`
}

// RevokeRequest removes whatever assignment exists at the given scope.
type RevokeRequest struct {
	Level   string `json:"level" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Object  string `json:"object" binding:"required"`
}

// WarmRequest pre-populates the policy cache for a batch of subjects.
type WarmRequest struct {
	Subjects []string `json:"subjects" binding:"required"`
}
