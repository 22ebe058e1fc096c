package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/resto-backoffice/floor"
	"github.com/yeremiapane/resto-backoffice/models"
	"github.com/yeremiapane/resto-backoffice/utils"
	"gorm.io/gorm"
)

var validTableStatus = map[string]bool{
	models.TableAvailable: true,
	models.TableOccupied:  true,
	models.TableDirty:     true,
	models.TableInactive:  true,
}

type TableController struct {
	DB  *gorm.DB
	Hub *floor.Hub
}

func NewTableController(db *gorm.DB, hub *floor.Hub) *TableController {
	return &TableController{DB: db, Hub: hub}
}

// CreateTable -> menambahkan meja baru
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber string `json:"table_number" binding:"required"`
		Capacity    int    `json:"capacity" binding:"required,gt=0"`
		Status      string `json:"status"` // optional, default "available"
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Status:      models.TableAvailable,
	}
	if req.Status != "" {
		if !validTableStatus[req.Status] {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid status %q", req.Status))
			return
		}
		table.Status = req.Status
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tc.Hub.BroadcastTable(floor.EventTableCreate, table)
	utils.InfoLogger.Printf("New table created: %s (capacity=%d, status=%s)", table.TableNumber, table.Capacity, table.Status)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> menampilkan seluruh meja, opsional ?min_capacity=
func (tc *TableController) GetAllTables(c *gin.Context) {
	var q struct {
		MinCapacity int    `form:"min_capacity"`
		Status      string `form:"status"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	query := tc.DB.Order("capacity ASC, table_number ASC")
	if q.MinCapacity > 0 {
		query = query.Where("capacity >= ?", q.MinCapacity)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}

	var tables []models.Table
	if err := query.Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// UpdateTable -> update status dan/atau kapasitas meja
func (tc *TableController) UpdateTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var body struct {
		Status   *string `json:"status"`
		Capacity *int    `json:"capacity"`
	}

	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Status == nil && body.Capacity == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("nothing to update"))
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Status != nil {
		if !validTableStatus[*body.Status] {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid status %q", *body.Status))
			return
		}
		table.Status = *body.Status
	}
	if body.Capacity != nil {
		if *body.Capacity <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("capacity must be positive"))
			return
		}
		table.Capacity = *body.Capacity
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tc.Hub.BroadcastTable(floor.EventTableUpdate, table)
	utils.InfoLogger.Printf("Table %d updated (capacity=%d, status=%s)", table.ID, table.Capacity, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> menghapus meja
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table

	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tc.Hub.BroadcastTable(floor.EventTableDelete, table)
	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{
		"id": table.ID,
	})
}
