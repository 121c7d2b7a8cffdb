package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/iwvelando/lifepath/internal/profile"
	"github.com/iwvelando/lifepath/internal/store"
	"github.com/iwvelando/lifepath/pkg/finance"
	"github.com/iwvelando/lifepath/pkg/loans"
	"github.com/iwvelando/lifepath/pkg/validation"
	"go.uber.org/zap"
)

const expensesPath = "profile.reality.expenses"

type handler struct {
	logger *zap.Logger
	store  store.Store
	cfg    Config
}

// NewHandler constructs the HTTP handler that serves the onboarding,
// dashboard and planning tool API.
func NewHandler(logger *zap.Logger, users store.Store, cfg Config) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.normalize()

	h := &handler{logger: logger, store: users, cfg: cfg}

	mux := http.NewServeMux()

	// Accounts
	mux.HandleFunc("/api/register", h.handleRegister)

	// Onboarding sections
	mux.HandleFunc("/api/profile", h.handleProfile)
	mux.HandleFunc("/api/profile/dream", h.handleDream)
	mux.HandleFunc("/api/profile/reality", h.handleReality)
	mux.HandleFunc("/api/profile/path", h.handlePath)
	mux.HandleFunc("/api/profile/export", h.handleProfileExport)

	// Expense edits after onboarding
	mux.HandleFunc("/api/expense", h.handleAddExpense)
	mux.HandleFunc("/api/expense/", h.handleRemoveExpense)

	mux.HandleFunc("/api/dashboard", h.handleDashboard)

	// Stateless planning tools
	mux.HandleFunc("/api/tools/savings", h.handleSavingsTool)
	mux.HandleFunc("/api/tools/loan", h.handleLoanTool)

	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type profileResponse struct {
	Username    string          `json:"username"`
	Profile     profile.Profile `json:"profile"`
	NextSection string          `json:"next_section,omitempty"`
}

type dashboardResponse struct {
	Username string              `json:"username"`
	Profile  profile.Profile     `json:"profile"`
	Gap      finance.GapAnalysis `json:"gap"`
	Warnings []string            `json:"warnings,omitempty"`
}

type incompleteResponse struct {
	Error       string `json:"error"`
	NextSection string `json:"next_section"`
}

type expensesResponse struct {
	Expenses []profile.Expense `json:"expenses"`
}

type savingsRequest struct {
	Target       *float64 `json:"target"`
	Contribution *float64 `json:"contribution"`
	AnnualReturn *float64 `json:"annual_return"`
}

type savingsResponse struct {
	Target       float64                   `json:"target"`
	Contribution float64                   `json:"contribution"`
	AnnualReturn float64                   `json:"annual_return"`
	Projection   finance.SavingsProjection `json:"projection"`
}

type loanRequest struct {
	Principal  *float64 `json:"principal"`
	AnnualRate *float64 `json:"annual_rate"`
	TermYears  *int     `json:"term_years"`
}

type loanResponse struct {
	Principal      float64 `json:"principal"`
	AnnualRate     float64 `json:"annual_rate"`
	TermYears      int     `json:"term_years"`
	MonthlyPayment float64 `json:"monthly_payment"`
}

func (h *handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRegister"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req registerRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		h.respondErrorWithOp(w, http.StatusBadRequest, "username and password are required", op)
		return
	}

	hash, err := hashPassword(req.Password, h.cfg.PasswordCost)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to hash password: %v", err), op)
		return
	}

	id, err := h.store.CreateUser(r.Context(), store.User{Username: req.Username, PasswordHash: hash})
	if errors.Is(err, store.ErrUserExists) {
		h.respondErrorWithOp(w, http.StatusConflict, "username already exists", op)
		return
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to create user: %v", err), op)
		return
	}

	h.logger.Info("registered user",
		zap.String("op", op),
		zap.String("id", id),
	)
	h.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProfile"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	user, ok := h.requireUser(w, r, op)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, profileResponse{
		Username:    user.Username,
		Profile:     user.Profile,
		NextSection: user.Profile.NextSection(),
	})
}

func (h *handler) handleDream(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDream"
	if r.Method != http.MethodPut {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	user, ok := h.requireUser(w, r, op)
	if !ok {
		return
	}

	var form profile.DreamForm
	if !h.decodeJSON(w, r, &form, op) {
		return
	}
	dream, err := form.Build()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	if !h.update(w, r, user.ID, store.Update{Set: map[string]any{"profile.dream": dream}}, op) {
		return
	}
	h.writeJSON(w, http.StatusOK, dream)
}

func (h *handler) handleReality(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReality"
	if r.Method != http.MethodPut {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	user, ok := h.requireUser(w, r, op)
	if !ok {
		return
	}

	var form profile.RealityForm
	if !h.decodeJSON(w, r, &form, op) {
		return
	}
	reality, err := form.Build()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	if !h.update(w, r, user.ID, store.Update{Set: map[string]any{"profile.reality": reality}}, op) {
		return
	}
	h.writeJSON(w, http.StatusOK, reality)
}

func (h *handler) handlePath(w http.ResponseWriter, r *http.Request) {
	const op = "server.handlePath"
	if r.Method != http.MethodPut {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	user, ok := h.requireUser(w, r, op)
	if !ok {
		return
	}

	var form profile.PathForm
	if !h.decodeJSON(w, r, &form, op) {
		return
	}
	path, err := form.Build(h.cfg.loanTerms())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	if !h.update(w, r, user.ID, store.Update{Set: map[string]any{"profile.path": path}}, op) {
		return
	}
	h.writeJSON(w, http.StatusOK, path)
}

func (h *handler) handleProfileExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProfileExport"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	user, ok := h.requireUser(w, r, op)
	if !ok {
		return
	}

	yamlBytes, err := user.Profile.EncodeYAML()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode profile: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"profileYaml": string(yamlBytes),
	})
}

func (h *handler) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAddExpense"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	user, ok := h.requireUser(w, r, op)
	if !ok {
		return
	}

	var form profile.ExpenseForm
	if !h.decodeJSON(w, r, &form, op) {
		return
	}
	expense, err := form.Build()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	if !h.update(w, r, user.ID, store.Update{Push: map[string]any{expensesPath: expense}}, op) {
		return
	}
	h.writeJSON(w, http.StatusCreated, expense)
}

// handleRemoveExpense deletes the expense at the index in the path. An index
// past the end leaves the list unchanged.
func (h *handler) handleRemoveExpense(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleRemoveExpense"
	if r.Method != http.MethodDelete {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	user, ok := h.requireUser(w, r, op)
	if !ok {
		return
	}

	index, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/expense/"))
	if err != nil || index < 0 {
		h.respondErrorWithOp(w, http.StatusNotFound, "expense not found", op)
		return
	}
	reality := user.Profile.Reality
	if reality == nil {
		h.respondErrorWithOp(w, http.StatusNotFound, "reality profile not found", op)
		return
	}

	expenses := append([]profile.Expense{}, reality.Expenses...)
	if index < len(expenses) {
		expenses = append(expenses[:index], expenses[index+1:]...)
		if !h.update(w, r, user.ID, store.Update{Set: map[string]any{expensesPath: expenses}}, op) {
			return
		}
	}
	h.writeJSON(w, http.StatusOK, expensesResponse{Expenses: expenses})
}

func (h *handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDashboard"
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	user, ok := h.requireUser(w, r, op)
	if !ok {
		return
	}

	if next := user.Profile.NextSection(); next != "" {
		h.writeJSON(w, http.StatusConflict, incompleteResponse{
			Error:       "onboarding incomplete",
			NextSection: next,
		})
		return
	}

	gap := user.Profile.Analyze()
	h.logger.Debug("computed gap analysis",
		zap.String("op", op),
		zap.String("id", user.ID),
		zap.Float64("monthly_gap", gap.MonthlyGap),
		zap.Bool("can_afford_dream", gap.CanAffordDream),
	)

	h.writeJSON(w, http.StatusOK, dashboardResponse{
		Username: user.Username,
		Profile:  user.Profile,
		Gap:      gap,
		Warnings: user.Profile.Warnings(),
	})
}

func (h *handler) handleSavingsTool(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSavingsTool"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req savingsRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	if err := validation.RequireAmount("target", req.Target); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if req.Contribution == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "contribution is required", op)
		return
	}
	annualReturn := h.cfg.Planning.SavingsAnnualReturn
	if req.AnnualReturn != nil {
		annualReturn = *req.AnnualReturn
	}
	if err := validation.ValidateRate("annual_return", annualReturn); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, savingsResponse{
		Target:       *req.Target,
		Contribution: *req.Contribution,
		AnnualReturn: annualReturn,
		Projection:   finance.SavingsTimeline(*req.Target, *req.Contribution, annualReturn),
	})
}

func (h *handler) handleLoanTool(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleLoanTool"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var req loanRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}
	if req.Principal == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "principal is required", op)
		return
	}
	rate := h.cfg.Planning.LoanAnnualRate
	if req.AnnualRate != nil {
		rate = *req.AnnualRate
	}
	years := h.cfg.Planning.LoanTermYears
	if req.TermYears != nil {
		years = *req.TermYears
	}
	if err := validation.ValidateRate("annual_rate", rate); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	if err := validation.ValidateYears("term_years", years); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, loanResponse{
		Principal:      *req.Principal,
		AnnualRate:     rate,
		TermYears:      years,
		MonthlyPayment: loans.MonthlyPayment(*req.Principal, rate, years),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.cfg.Version,
	})
}

// decodeJSON reads a size-limited JSON body into dst, answering 413 or 400
// on failure.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), op)
		case errors.Is(err, io.EOF):
			h.respondErrorWithOp(w, http.StatusBadRequest, "request body is empty", op)
		default:
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		}
		return false
	}
	return true
}

func (h *handler) update(w http.ResponseWriter, r *http.Request, id string, update store.Update, op string) bool {
	err := h.store.UpdateUser(r.Context(), id, update)
	if errors.Is(err, store.ErrNotFound) {
		h.respondErrorWithOp(w, http.StatusNotFound, "user not found", op)
		return false
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to update profile: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
