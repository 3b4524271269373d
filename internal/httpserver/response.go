package httpserver

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type registerResponse struct {
	Message  string `json:"message"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

type userSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    userSummary `json:"user"`
}

type boardsResponse struct {
	UserID   int64    `json:"userId"`
	Username string   `json:"username"`
	Boards   []string `json:"boards"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
