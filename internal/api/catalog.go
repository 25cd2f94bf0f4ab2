package api

import (
	"net/http"
	"strconv"

	"fstore-be/internal/apperror"
	"fstore-be/internal/category"
	"fstore-be/internal/food"
	"fstore-be/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.CategorySvc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "categories", category.ToCategoryDTOs(cats))
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperror.Wrap(errInvalidBody, err))
		return
	}

	cat, err := h.CategorySvc.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, "category created", category.ToCategoryDTO(cat))
}

// ListFoods accepts ?category_id=, ?search= and, for admins and internal
// callers, ?include_deleted=true.
func (h *Handler) ListFoods(c *gin.Context) {
	var filter food.ListFilter
	filter.Search = c.Query("search")

	if raw := c.Query("category_id"); raw != "" {
		id, err := utils.ToUint(raw)
		if err != nil {
			respondError(c, apperror.Wrap(errInvalidID, err))
			return
		}
		filter.CategoryID = &id
	}

	if includeDeleted, _ := strconv.ParseBool(c.Query("include_deleted")); includeDeleted {
		filter.IncludeDeleted = currentUser(c).IsAdmin() || utils.IsInternalRequest(c.Request.Context())
	}

	foods, err := h.FoodSvc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "foods", food.ToFoodDTOs(foods))
}

func (h *Handler) GetFood(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	f, err := h.FoodSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "food", food.ToFoodDTO(f))
}

func (h *Handler) CreateFood(c *gin.Context) {
	var params food.CreateFoodParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondError(c, apperror.Wrap(errInvalidBody, err))
		return
	}

	f, err := h.FoodSvc.Create(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusCreated, "food created", food.ToFoodDTO(f))
}

func (h *Handler) DeleteFood(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.FoodSvc.SoftDelete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, "food deleted", nil)
}
