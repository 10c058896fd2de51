package handler

import (
	"net/http"
	"strconv"

	"radar/pkg/apperror"
	"radar/pkg/auth"
	"radar/pkg/dto"
	"radar/pkg/helper"
	"radar/services/user/service"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// 주변 유저 검색
func (h *UserHandler) FindNearby(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}

	nearby, err := h.userService.FindNearby(r.Context(), caller.ID)
	if err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, nearby)
}

// 유저 리스트 조회 (관리자)
func (h *UserHandler) FindUserList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := helper.ParsePositiveInt(query.Get("page"), service.DefaultPage)
	limit := helper.ParsePositiveInt(query.Get("limit"), service.DefaultLimit)

	users, err := h.userService.ListUsers(r.Context(), page, limit)
	if err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, users)
}

// 특정 유저 조회
func (h *UserHandler) FindUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, dto.ToUserDTO(*user))
}

// 매칭 선호도 수정
func (h *UserHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	// 본문 검사보다 대상 조회와 권한 확인이 먼저
	if err := h.userService.AuthorizeTarget(r.Context(), caller, userID); err != nil {
		helper.WriteError(w, err)
		return
	}

	var update dto.PreferencesUpdate
	if err := helper.DecodeJSON(r.Body, &update); err != nil {
		helper.WriteError(w, err)
		return
	}

	prefs, err := h.userService.UpdatePreferences(r.Context(), caller, userID, update)
	if err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, dto.PreferencesResponse{
		Message:     "Preferences updated successfully",
		Preferences: *prefs,
	})
}

// 프로필 수정 (name, email만 허용)
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	// 본문 검사보다 대상 조회와 권한 확인이 먼저
	if err := h.userService.AuthorizeTarget(r.Context(), caller, userID); err != nil {
		helper.WriteError(w, err)
		return
	}

	var update dto.ProfileUpdate
	if err := helper.DecodeAllowed(r.Body, &update, "name", "email"); err != nil {
		helper.WriteError(w, err)
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), caller, userID, update)
	if err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, dto.ToUserDTO(*user))
}

// 비밀번호 변경
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	// 본문 검사보다 대상 조회와 권한 확인이 먼저
	if err := h.userService.AuthorizeTarget(r.Context(), caller, userID); err != nil {
		helper.WriteError(w, err)
		return
	}

	var req dto.PasswordUpdateRequest
	if err := helper.DecodeJSON(r.Body, &req); err != nil {
		helper.WriteError(w, err)
		return
	}

	if err := h.userService.UpdatePassword(r.Context(), caller, userID, req); err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "Password updated successfully"})
}

// 유저 관심사 교체
func (h *UserHandler) ReplaceInterests(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	// 본문 검사보다 대상 조회와 권한 확인이 먼저
	if err := h.userService.AuthorizeTarget(r.Context(), caller, userID); err != nil {
		helper.WriteError(w, err)
		return
	}

	var req dto.UserInterestsRequest
	if err := helper.DecodeJSON(r.Body, &req); err != nil {
		helper.WriteError(w, err)
		return
	}

	user, err := h.userService.ReplaceInterests(r.Context(), caller, userID, req.InterestIDs)
	if err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, dto.ToUserDTO(*user))
}

// 유저 삭제 (관리자)
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), caller, userID); err != nil {
		helper.WriteError(w, err)
		return
	}
	helper.WriteJSON(w, http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

func requireCaller(w http.ResponseWriter, r *http.Request) (auth.Caller, bool) {
	caller, ok := auth.CallerFrom(r.Context())
	if !ok {
		helper.WriteError(w, apperror.Authentication("Authentication required"))
	}
	return caller, ok
}

// 라우트에서 숫자만 매칭되므로 변환 실패는 범위 초과뿐
func userIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || userID < 1 {
		helper.WriteError(w, service.ErrUserNotFound)
		return 0, false
	}
	return userID, true
}
