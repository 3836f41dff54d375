// Package handler はchildフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"chirusapo_backend/internal/feature/child/transport/http/dto"
	"chirusapo_backend/internal/feature/child/usecase"
	"chirusapo_backend/internal/platform/middleware"
	"chirusapo_backend/internal/shared/apperr"
	"chirusapo_backend/internal/shared/response"
)

// ChildUsecase は子ども情報操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ChildUsecase interface {
	AddChild(ctx context.Context, groupID uint, in usecase.AddChildInput) error
	ListChildren(ctx context.Context, groupID uint) ([]usecase.ChildDetail, error)
	GetChild(ctx context.Context, groupID uint, childID string) (*usecase.ChildDetail, error)
	DeleteChild(ctx context.Context, groupID uint, childID string) error
	AddVaccination(ctx context.Context, groupID uint, childID string, in usecase.AddVaccinationInput) error
	DeleteVaccination(ctx context.Context, groupID uint, childID string, vaccinationID uint) error
	AddAllergy(ctx context.Context, groupID uint, childID string, allergyName string) error
	DeleteAllergy(ctx context.Context, groupID uint, childID string, allergyID uint) error
	AddGrowthRecord(ctx context.Context, groupID uint, childID string, in usecase.AddGrowthRecordInput) error
}

// ChildHandler は子ども情報のHTTPリクエストを処理します。
type ChildHandler struct {
	children ChildUsecase
}

// NewChildHandler はChildHandlerの新しいインスタンスを生成します。
func NewChildHandler(children ChildUsecase) *ChildHandler {
	return &ChildHandler{children: children}
}

// bindJSONStrict はリクエストボディをdstにデコードします。
// 未知のキーは境界で拒否します。
func bindJSONStrict(c *gin.Context, dst any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// flowError はユースケースのエラーをレスポンスに変換します。
func flowError(c *gin.Context, op string, err error) {
	var flowErr *apperr.Errors
	if errors.As(err, &flowErr) {
		response.BadRequest(c, flowErr.Codes...)
		return
	}
	slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
	response.InternalError(c)
}

// groupID は認証ミドルウェアが解決したアカウントIDをグループIDとして返します。
func groupID(c *gin.Context) (uint, bool) {
	id, ok := middleware.AccountID(c)
	if !ok {
		response.Unauthorized(c)
	}
	return id, ok
}

// Add は子ども追加APIエンドポイントを処理します。
func (h *ChildHandler) Add(c *gin.Context) {
	gid, ok := groupID(c)
	if !ok {
		return
	}

	var req dto.AddChildRequest
	if err := bindJSONStrict(c, &req); err != nil {
		slog.Warn("add child bind failed", "error", err, "remote_addr", c.ClientIP())
		response.BadRequest(c, apperr.RequiredParam)
		return
	}

	// user_iconのみ任意
	if req.UserID == nil || req.UserName == nil || req.Birthday == nil ||
		req.Gender == nil || req.BloodType == nil {
		response.BadRequest(c, apperr.RequiredParam)
		return
	}
	icon := ""
	if req.UserIcon != nil {
		icon = *req.UserIcon
	}

	err := h.children.AddChild(c.Request.Context(), gid, usecase.AddChildInput{
		ChildID:   *req.UserID,
		Name:      *req.UserName,
		Birthday:  *req.Birthday,
		Gender:    *req.Gender,
		BloodType: *req.BloodType,
		Icon:      icon,
	})
	if err != nil {
		flowError(c, "add child", err)
		return
	}

	slog.Info("child added", "child_id", *req.UserID, "group_id", gid)
	response.OK(c, nil)
}

// List は子ども一覧取得APIエンドポイントを処理します。
func (h *ChildHandler) List(c *gin.Context) {
	gid, ok := groupID(c)
	if !ok {
		return
	}

	details, err := h.children.ListChildren(c.Request.Context(), gid)
	if err != nil {
		flowError(c, "list children", err)
		return
	}

	out := make([]dto.ChildDetail, 0, len(details))
	for i := range details {
		out = append(out, dto.ChildDetailFromUsecase(&details[i]))
	}
	response.OK(c, gin.H{"children": out})
}

// Get は子ども詳細取得APIエンドポイントを処理します。
func (h *ChildHandler) Get(c *gin.Context) {
	gid, ok := groupID(c)
	if !ok {
		return
	}

	detail, err := h.children.GetChild(c.Request.Context(), gid, c.Param("child_id"))
	if err != nil {
		flowError(c, "get child", err)
		return
	}
	response.OK(c, dto.ChildDetailFromUsecase(detail))
}

// Delete は子ども削除APIエンドポイントを処理します。論理削除です。
func (h *ChildHandler) Delete(c *gin.Context) {
	gid, ok := groupID(c)
	if !ok {
		return
	}

	if err := h.children.DeleteChild(c.Request.Context(), gid, c.Param("child_id")); err != nil {
		flowError(c, "delete child", err)
		return
	}
	response.OK(c, nil)
}

// AddVaccination は予防接種追加APIエンドポイントを処理します。
func (h *ChildHandler) AddVaccination(c *gin.Context) {
	gid, ok := groupID(c)
	if !ok {
		return
	}

	var req dto.AddVaccinationRequest
	if err := bindJSONStrict(c, &req); err != nil {
		slog.Warn("add vaccination bind failed", "error", err, "remote_addr", c.ClientIP())
		response.BadRequest(c, apperr.RequiredParam)
		return
	}
	if req.VaccineName == nil || req.VisitDate == nil {
		response.BadRequest(c, apperr.RequiredParam)
		return
	}

	err := h.children.AddVaccination(c.Request.Context(), gid, c.Param("child_id"), usecase.AddVaccinationInput{
		VaccineName: *req.VaccineName,
		VisitDate:   *req.VisitDate,
	})
	if err != nil {
		flowError(c, "add vaccination", err)
		return
	}
	response.OK(c, nil)
}

// DeleteVaccination は予防接種削除APIエンドポイントを処理します。
func (h *ChildHandler) DeleteVaccination(c *gin.Context) {
	gid, ok := groupID(c)
	if !ok {
		return
	}

	vaccinationID, err := parseID(c.Param("vaccination_id"))
	if err != nil {
		response.BadRequest(c, apperr.UnknownVaccination)
		return
	}

	if err := h.children.DeleteVaccination(c.Request.Context(), gid, c.Param("child_id"), vaccinationID); err != nil {
		flowError(c, "delete vaccination", err)
		return
	}
	response.OK(c, nil)
}

// AddAllergy はアレルギー追加APIエンドポイントを処理します。
func (h *ChildHandler) AddAllergy(c *gin.Context) {
	gid, ok := groupID(c)
	if !ok {
		return
	}

	var req dto.AddAllergyRequest
	if err := bindJSONStrict(c, &req); err != nil {
		slog.Warn("add allergy bind failed", "error", err, "remote_addr", c.ClientIP())
		response.BadRequest(c, apperr.RequiredParam)
		return
	}
	if req.AllergyName == nil {
		response.BadRequest(c, apperr.RequiredParam)
		return
	}

	if err := h.children.AddAllergy(c.Request.Context(), gid, c.Param("child_id"), *req.AllergyName); err != nil {
		flowError(c, "add allergy", err)
		return
	}
	response.OK(c, nil)
}

// DeleteAllergy はアレルギー削除APIエンドポイントを処理します。
func (h *ChildHandler) DeleteAllergy(c *gin.Context) {
	gid, ok := groupID(c)
	if !ok {
		return
	}

	allergyID, err := parseID(c.Param("allergy_id"))
	if err != nil {
		response.BadRequest(c, apperr.UnknownAllergy)
		return
	}

	if err := h.children.DeleteAllergy(c.Request.Context(), gid, c.Param("child_id"), allergyID); err != nil {
		flowError(c, "delete allergy", err)
		return
	}
	response.OK(c, nil)
}

// AddGrowthRecord は成長記録追加APIエンドポイントを処理します。
func (h *ChildHandler) AddGrowthRecord(c *gin.Context) {
	gid, ok := groupID(c)
	if !ok {
		return
	}

	var req dto.AddGrowthRecordRequest
	if err := bindJSONStrict(c, &req); err != nil {
		slog.Warn("add growth record bind failed", "error", err, "remote_addr", c.ClientIP())
		response.BadRequest(c, apperr.RequiredParam)
		return
	}
	if req.BodyHeight == nil || req.BodyWeight == nil || req.ClothesSize == nil ||
		req.ShoesSize == nil || req.AddDate == nil {
		response.BadRequest(c, apperr.RequiredParam)
		return
	}

	err := h.children.AddGrowthRecord(c.Request.Context(), gid, c.Param("child_id"), usecase.AddGrowthRecordInput{
		BodyHeight:  *req.BodyHeight,
		BodyWeight:  *req.BodyWeight,
		ClothesSize: *req.ClothesSize,
		ShoesSize:   *req.ShoesSize,
		AddDate:     *req.AddDate,
	})
	if err != nil {
		flowError(c, "add growth record", err)
		return
	}
	response.OK(c, nil)
}

// parseID はパスパラメータの数値IDをパースします。
func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
