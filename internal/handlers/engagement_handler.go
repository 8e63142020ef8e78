package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ecopulse-app/ecopulse/internal/services"
	"github.com/ecopulse-app/ecopulse/pkg/middleware"
)

// EngagementHandler is the HTTP seam for the domain layer: the route
// handlers owning posts, follows and challenges call these endpoints
// after their own mutation succeeds. Responses are always 202 — the
// side effects are best-effort by contract and never report failure
// back to the caller.
type EngagementHandler struct {
	service *services.EngagementService
}

func NewEngagementHandler(service *services.EngagementService) *EngagementHandler {
	return &EngagementHandler{service: service}
}

func (h *EngagementHandler) accepted(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "accepted"})
}

func (h *EngagementHandler) authedUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

// PostCreatedHandler records a new post by the authenticated user.
func (h *EngagementHandler) PostCreatedHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}
	h.service.PostCreated(r.Context(), userID)
	h.accepted(w)
}

// PostLikedHandler records a like by the authenticated user.
func (h *EngagementHandler) PostLikedHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}

	var req struct {
		PostID   string `json:"post_id"`
		AuthorID string `json:"author_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PostID == "" || req.AuthorID == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	h.service.PostLiked(r.Context(), userID, req.AuthorID, req.PostID)
	h.accepted(w)
}

// CommentAddedHandler records a comment by the authenticated user.
func (h *EngagementHandler) CommentAddedHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}

	var req struct {
		PostID   string `json:"post_id"`
		AuthorID string `json:"author_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PostID == "" || req.AuthorID == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	h.service.CommentAdded(r.Context(), userID, req.AuthorID, req.PostID)
	h.accepted(w)
}

// FollowReceivedHandler records that the authenticated user followed
// someone.
func (h *EngagementHandler) FollowReceivedHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}

	var req struct {
		FollowedID string `json:"followed_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FollowedID == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	h.service.FollowReceived(r.Context(), userID, req.FollowedID)
	h.accepted(w)
}

// ChallengeJoinedHandler records the authenticated user joining a
// challenge.
func (h *EngagementHandler) ChallengeJoinedHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}

	var req struct {
		ChallengeID string `json:"challenge_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChallengeID == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	h.service.ChallengeJoined(r.Context(), userID, req.ChallengeID)
	h.accepted(w)
}

// ChallengeCompletedHandler records a finished challenge submission.
func (h *EngagementHandler) ChallengeCompletedHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authedUser(w, r)
	if !ok {
		return
	}

	var req struct {
		ChallengeID  string `json:"challenge_id"`
		RewardPoints int    `json:"reward_points"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChallengeID == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	h.service.ChallengeCompleted(r.Context(), userID, req.ChallengeID, req.RewardPoints)
	h.accepted(w)
}
