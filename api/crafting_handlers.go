package api

import (
	"net/http"
	"strconv"
	"time"

	"akashic/domain/entities"

	"github.com/gin-gonic/gin"
)

type inventoryItemResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Rarity   string `json:"rarity"`
	Quantity int64  `json:"quantity"`
	Equipped bool   `json:"equipped"`
}

type recipeResponse struct {
	ID              int64                       `json:"id"`
	Name            string                      `json:"name"`
	ResultName      string                      `json:"result_name"`
	ResultRarity    string                      `json:"result_rarity"`
	ManaCost        int64                       `json:"mana_cost"`
	DurationSeconds int64                       `json:"duration_seconds"`
	Ingredients     []entities.RecipeIngredient `json:"ingredients"`
}

type queueItemResponse struct {
	ID          int64     `json:"id"`
	RecipeID    int64     `json:"recipe_id"`
	StartedAt   time.Time `json:"started_at"`
	CompletesAt time.Time `json:"completes_at"`
	Claimed     bool      `json:"claimed"`
	Ready       bool      `json:"ready"`
}

type equipRequest struct {
	Equipped bool `json:"equipped"`
}

type startCraftingRequest struct {
	RecipeID int64 `json:"recipeId" binding:"required"`
}

func (s *Server) handleInventory(c *gin.Context) {
	user := currentUser(c)

	items, err := s.crafting.ListInventory(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]inventoryItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, inventoryItemResponse{
			ID:       item.ID,
			Name:     item.Name,
			Type:     item.ItemType,
			Rarity:   item.Rarity,
			Quantity: item.Quantity,
			Equipped: item.Equipped,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": resp})
}

func (s *Server) handleEquip(c *gin.Context) {
	user := currentUser(c)

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondValidationError(c, entities.NewValidationError("invalid item id"))
		return
	}

	var req equipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := s.crafting.SetEquipped(c.Request.Context(), user.ID, itemID, req.Equipped); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"equipped": req.Equipped})
}

func (s *Server) handleListRecipes(c *gin.Context) {
	recipes, err := s.crafting.ListRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]recipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		resp = append(resp, recipeResponse{
			ID:              recipe.ID,
			Name:            recipe.Name,
			ResultName:      recipe.ResultName,
			ResultRarity:    recipe.ResultRarity,
			ManaCost:        recipe.ManaCost,
			DurationSeconds: recipe.DurationSeconds,
			Ingredients:     recipe.Ingredients,
		})
	}
	c.JSON(http.StatusOK, gin.H{"recipes": resp})
}

func (s *Server) handleCraftingQueue(c *gin.Context) {
	user := currentUser(c)

	items, err := s.crafting.ListQueue(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	resp := make([]queueItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, queueItemResponse{
			ID:          item.ID,
			RecipeID:    item.RecipeID,
			StartedAt:   item.StartedAt,
			CompletesAt: item.CompletesAt,
			Claimed:     item.IsClaimed(),
			Ready:       item.IsComplete(now) && !item.IsClaimed(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"queue": resp})
}

func (s *Server) handleStartCrafting(c *gin.Context) {
	user := currentUser(c)

	var req startCraftingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	item, err := s.crafting.StartCrafting(c.Request.Context(), user.ID, req.RecipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"queue_item": queueItemResponse{
		ID:          item.ID,
		RecipeID:    item.RecipeID,
		StartedAt:   item.StartedAt,
		CompletesAt: item.CompletesAt,
	}})
}

func (s *Server) handleClaimCrafting(c *gin.Context) {
	user := currentUser(c)

	queueID, err := strconv.ParseInt(c.Param("queueId"), 10, 64)
	if err != nil {
		respondValidationError(c, entities.NewValidationError("invalid queue id"))
		return
	}

	item, err := s.crafting.ClaimCrafting(c.Request.Context(), user.ID, queueID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": inventoryItemResponse{
		ID:       item.ID,
		Name:     item.Name,
		Type:     item.ItemType,
		Rarity:   item.Rarity,
		Quantity: item.Quantity,
		Equipped: item.Equipped,
	}})
}
