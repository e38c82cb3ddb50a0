package gamification

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	model "github.com/glkeru/civicpoints/internal/models"
	service "github.com/glkeru/civicpoints/internal/services"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type GamificationHandler struct {
	router  *mux.Router
	service *service.GamificationService
	logger  *zap.Logger
}

func NewHandler(serv *service.GamificationService, logger *zap.Logger) *GamificationHandler {
	router := mux.NewRouter()
	handler := &GamificationHandler{router, serv, logger}
	router.HandleFunc("/account", handler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/account/{user}", handler.SummaryHandler).Methods(http.MethodGet)
	router.HandleFunc("/account/{user}/redemptions", handler.RedemptionsHandler).Methods(http.MethodGet)
	router.HandleFunc("/activity", handler.ActivityHandler).Methods(http.MethodPost)
	router.HandleFunc("/redeem/{id}", handler.RedeemHandler).Methods(http.MethodPost)
	router.HandleFunc("/rewards", handler.RewardsHandler).Methods(http.MethodGet)
	router.HandleFunc("/reward/{id}", handler.RewardHandler).Methods(http.MethodGet)
	router.HandleFunc("/reward", handler.SaveRewardHandler).Methods(http.MethodPost)

	return handler
}

func (h *GamificationHandler) ServeHTTP(w http.ResponseWriter, res *http.Request) {
	h.router.ServeHTTP(w, res)
}

func (h *GamificationHandler) Log(msg string, handler string, err error) {
	h.logger.Error(msg,
		zap.String("handler", handler),
		zap.Error(err),
	)
}

// статус ответа по доменной ошибке
func statusFromError(err error) int {
	switch {
	case errors.Is(err, model.ErrAccountNotFound),
		errors.Is(err, model.ErrRewardNotFound),
		errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrRewardInactive),
		errors.Is(err, model.ErrRewardExpired),
		errors.Is(err, model.ErrRewardExhausted),
		errors.Is(err, model.ErrInsufficientBalance):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConflict):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *GamificationHandler) respond(w http.ResponseWriter, handler string, response any) {
	j, err := json.Marshal(response)
	if err != nil {
		h.Log("Marshal", handler, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(j)
}

type RegisterRequest struct {
	UserId string `json:"userId"`
}

// Регистрация счета
func (h *GamificationHandler) RegisterHandler(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		h.Log("Get request body", "RegisterHandler", err)
		http.Error(w, "Body is empty", http.StatusBadRequest)
		return
	}
	defer req.Body.Close()
	request := &RegisterRequest{}
	err = json.Unmarshal(body, request)
	if err != nil || request.UserId == "" {
		http.Error(w, "Body is not correct", http.StatusBadRequest)
		return
	}

	account, err := h.service.Register(req.Context(), request.UserId)
	if err != nil {
		h.Log("Register", "RegisterHandler", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.respond(w, "RegisterHandler", model.AccountSummary{Points: account.Points, Achievements: account.Achievements})
}

// Сводка по счету
func (h *GamificationHandler) SummaryHandler(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	summary, err := h.service.GetSummary(req.Context(), vars["user"])
	if err != nil {
		if statusFromError(err) == http.StatusInternalServerError {
			h.Log("GetSummary", "SummaryHandler", err)
		}
		http.Error(w, err.Error(), statusFromError(err))
		return
	}
	h.respond(w, "SummaryHandler", summary)
}

// Обмены пользователя
func (h *GamificationHandler) RedemptionsHandler(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	tnxs, err := h.service.RedemptionList(req.Context(), vars["user"])
	if err != nil {
		h.Log("RedemptionList", "RedemptionsHandler", err)
		http.Error(w, err.Error(), statusFromError(err))
		return
	}
	type redemption struct {
		Reward     string `json:"rewardId"`
		Code       string `json:"code"`
		RedeemedAt string `json:"redeemedAt"`
	}
	response := make([]redemption, len(tnxs))
	for i, tnx := range tnxs {
		response[i] = redemption{tnx.Reward.String(), tnx.Code, tnx.RedeemedAt.Format("2006-01-02 15:04:05")}
	}
	h.respond(w, "RedemptionsHandler", response)
}

type ActivityResponse struct {
	Points       int      `json:"points"`
	Achievements []string `json:"achievements"`
}

// Событие активности
func (h *GamificationHandler) ActivityHandler(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		h.Log("Get request body", "ActivityHandler", err)
		http.Error(w, "Body is empty", http.StatusBadRequest)
		return
	}
	defer req.Body.Close()

	msg := &service.ActivityMessage{}
	err = json.Unmarshal(body, msg)
	if err != nil || msg.UserId == "" {
		http.Error(w, "Body is not correct", http.StatusBadRequest)
		return
	}
	account, err := h.service.ActivityApply(req.Context(), *msg)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			h.Log("ActivityApply", "ActivityHandler", err)
		}
		http.Error(w, err.Error(), status)
		return
	}
	h.respond(w, "ActivityHandler", ActivityResponse{account.Points, account.Achievements})
}

type RedeemResponse struct {
	Code            string   `json:"redemptionCode"`
	RemainingPoints int      `json:"remainingPoints"`
	Achievements    []string `json:"achievements"`
}

// Обмен баллов на вознаграждение, пользователь из заголовка X-Account
func (h *GamificationHandler) RedeemHandler(w http.ResponseWriter, req *http.Request) {
	user := req.Header.Get("X-Account")
	if user == "" {
		http.Error(w, "X-Account header is required", http.StatusBadRequest)
		return
	}
	vars := mux.Vars(req)
	rewardId, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "Reward id is not correct", http.StatusBadRequest)
		return
	}

	result, err := h.service.Redeem(req.Context(), user, rewardId)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			h.Log("Redeem", "RedeemHandler", err)
		}
		http.Error(w, err.Error(), status)
		return
	}
	h.respond(w, "RedeemHandler", RedeemResponse{result.Code, result.RemainingPoints, result.Achievements})
}

type RewardResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	PointsCost   int    `json:"pointsCost"`
	Availability int    `json:"availability"`
	IsActive     bool   `json:"isActive"`
	ExpiryDate   string `json:"expiryDate,omitempty"`
	Redeemed     int    `json:"redeemed"`
}

func rewardResponse(reward model.Reward) RewardResponse {
	response := RewardResponse{
		ID:           reward.UUID.String(),
		Name:         reward.Name,
		Description:  reward.Description,
		Category:     reward.Category,
		PointsCost:   reward.PointsCost,
		Availability: reward.Availability,
		IsActive:     reward.IsActive,
		Redeemed:     reward.Redeemed,
	}
	if reward.ExpiryDate != nil {
		response.ExpiryDate = reward.ExpiryDate.Format("2006-01-02 15:04:05")
	}
	return response
}

// Список вознаграждений
func (h *GamificationHandler) RewardsHandler(w http.ResponseWriter, req *http.Request) {
	category := req.URL.Query().Get("category")
	onlyActive := req.URL.Query().Get("all") == ""
	rewards, err := h.service.RewardList(req.Context(), category, onlyActive)
	if err != nil {
		h.Log("RewardList", "RewardsHandler", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	response := make([]RewardResponse, len(rewards))
	for i, reward := range rewards {
		response[i] = rewardResponse(reward)
	}
	h.respond(w, "RewardsHandler", response)
}

// Получить вознаграждение
func (h *GamificationHandler) RewardHandler(w http.ResponseWriter, req *http.Request) {
	vars := mux.Vars(req)
	rewardId, err := uuid.Parse(vars["id"])
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	reward, err := h.service.RewardGet(req.Context(), rewardId)
	if err != nil {
		http.Error(w, err.Error(), statusFromError(err))
		return
	}
	h.respond(w, "RewardHandler", rewardResponse(reward))
}

type SaveRewardRequest struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	PointsCost   int     `json:"pointsCost"`
	Availability *int    `json:"availability"`
	IsActive     *bool   `json:"isActive"`
	ExpiryDate   *string `json:"expiryDate"`
}

// Создать/обновить вознаграждение (админ, авторизация во внешнем слое)
func (h *GamificationHandler) SaveRewardHandler(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		h.Log("Get request body", "SaveRewardHandler", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer req.Body.Close()
	request := &SaveRewardRequest{}
	err = json.Unmarshal(body, request)
	if err != nil {
		h.Log("Unmarshal", "SaveRewardHandler", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if request.Name == "" || request.PointsCost <= 0 {
		http.Error(w, "Name and positive pointsCost are required", http.StatusBadRequest)
		return
	}

	reward := model.Reward{
		Name:         request.Name,
		Description:  request.Description,
		Category:     request.Category,
		PointsCost:   request.PointsCost,
		Availability: -1,
		IsActive:     true,
	}
	if request.ID != "" {
		reward.UUID, err = uuid.Parse(request.ID)
		if err != nil {
			http.Error(w, "Reward id is not correct", http.StatusBadRequest)
			return
		}
	}
	if request.Availability != nil {
		reward.Availability = *request.Availability
	}
	if request.IsActive != nil {
		reward.IsActive = *request.IsActive
	}
	if request.ExpiryDate != nil {
		expiry, err := time.Parse("2006-01-02 15:04:05", *request.ExpiryDate)
		if err != nil {
			http.Error(w, "Expiry date is not correct", http.StatusBadRequest)
			return
		}
		reward.ExpiryDate = &expiry
	}

	rewardId, err := h.service.RewardSave(req.Context(), reward)
	if err != nil {
		h.Log("RewardSave", "SaveRewardHandler", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.respond(w, "SaveRewardHandler", map[string]string{"id": rewardId.String()})
}
