package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-point-api/internal/interfaces"
	"github.com/onerilhan/go-point-api/internal/middleware"
	"github.com/onerilhan/go-point-api/internal/middleware/errors"
	"github.com/onerilhan/go-point-api/internal/models"
)

// PointHandler /point HTTP isteklerini yönetir
type PointHandler struct {
	pointService interfaces.PointServiceInterface
}

// NewPointHandler yeni handler oluşturur
func NewPointHandler(pointService interfaces.PointServiceInterface) *PointHandler {
	return &PointHandler{pointService: pointService}
}

// RegisterRoutes /point route'larını router'a ekler
func (h *PointHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/point/{id:[0-9]+}", h.GetPoint).Methods(http.MethodGet)
	router.HandleFunc("/point/{id:[0-9]+}/histories", h.GetHistories).Methods(http.MethodGet)
	router.HandleFunc("/point/{id:[0-9]+}/charge", h.Charge).Methods(http.MethodPatch)
	router.HandleFunc("/point/{id:[0-9]+}/use", h.Use).Methods(http.MethodPatch)
}

// GetPoint kullanıcının puan bakiyesini döner
func (h *PointHandler) GetPoint(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromPath(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	balance, err := h.pointService.GetBalance(userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, balance)
}

// GetHistories kullanıcının puan geçmişini commit sırasıyla döner
func (h *PointHandler) GetHistories(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromPath(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	history, err := h.pointService.GetHistory(userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, history)
}

// Charge kullanıcıya puan yükler
func (h *PointHandler) Charge(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.pointService.Charge)
}

// Use kullanıcının puanını kullanır
func (h *PointHandler) Use(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.pointService.Use)
}

func (h *PointHandler) mutate(w http.ResponseWriter, r *http.Request, op func(userID, amount int64) (*models.Balance, error)) {
	userID, err := userIDFromPath(r)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	amount, err := decodeAmount(r.Body)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	balance, err := op(userID, amount)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, balance)
}

// amountRequest charge/use body'si
type amountRequest struct {
	Amount *int64 `json:"amount"`
}

// decodeAmount {"amount": n} veya çıplak sayı kabul eder
func decodeAmount(body io.Reader) (int64, error) {
	if body == nil {
		return 0, amountError("request body gerekli", nil)
	}
	raw, err := io.ReadAll(io.LimitReader(body, 1024))
	if err != nil {
		return 0, amountError("request body okunamadı", nil)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, amountError("request body gerekli", nil)
	}

	if raw[0] == '{' {
		var req amountRequest
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return 0, amountError("geçersiz JSON formatı", string(raw))
		}
		if req.Amount == nil {
			return 0, amountError("amount alanı gerekli", nil)
		}
		return *req.Amount, nil
	}

	amount, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, amountError("amount tam sayı olmalı", string(raw))
	}
	return amount, nil
}

func amountError(msg string, value interface{}) error {
	return &errors.ValidationError{
		Message:    msg,
		StatusCode: http.StatusBadRequest,
		Field:      "amount",
		Value:      value,
	}
}

// userIDFromPath mux değişkeninden kullanıcı ID'sini okur.
// Route regex'i sadece rakam kabul eder; burada sadece taşma kalır.
func userIDFromPath(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &errors.ValidationError{
			Message:    fmt.Sprintf("geçersiz kullanıcı ID: %s", raw),
			StatusCode: http.StatusBadRequest,
			Field:      "id",
			Value:      raw,
		}
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Response JSON encoding failed")
	}
}
