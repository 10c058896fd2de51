package handler

import (
	"net/http"

	"radar/pkg/dto"
	"radar/pkg/helper"
	"radar/services/user/service"

	"github.com/go-chi/chi/v5"
)

type InterestHandler struct {
	interestService *service.InterestService
}

func NewInterestHandler(interestService *service.InterestService) *InterestHandler {
	return &InterestHandler{
		interestService: interestService,
	}
}

// 관심사 목록 조회
func (h *InterestHandler) FindInterestList(w http.ResponseWriter, r *http.Request) {
	interests, err := h.interestService.ListInterests(r.Context())
	if err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, interests)
}

// 관심사 생성 (관리자)
func (h *InterestHandler) CreateInterest(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	var req dto.InterestCreateRequest
	if err := helper.DecodeJSON(r.Body, &req); err != nil {
		helper.WriteError(w, err)
		return
	}

	interest, err := h.interestService.CreateInterest(r.Context(), caller, req)
	if err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusCreated, interest)
}

// 관심사 수정 (name, weight만 허용)
func (h *InterestHandler) UpdateInterest(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	interestID := chi.URLParam(r, "id")

	// 허용 키 검사 전에 존재 여부부터 확인
	if _, err := h.interestService.GetInterest(r.Context(), interestID); err != nil {
		helper.WriteError(w, err)
		return
	}

	var update dto.InterestUpdate
	if err := helper.DecodeAllowed(r.Body, &update, "name", "weight"); err != nil {
		helper.WriteError(w, err)
		return
	}

	interest, err := h.interestService.UpdateInterest(r.Context(), caller, interestID, update)
	if err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, interest)
}

// 관심사 삭제 (관리자)
func (h *InterestHandler) DeleteInterest(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	if err := h.interestService.DeleteInterest(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Interest deleted successfully"})
}
