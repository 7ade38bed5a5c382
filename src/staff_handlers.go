package main

import (
	"errors"
	"log"
	"net/http"

	"mrt/src/db"
	"mrt/src/models"
	"mrt/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func staffAdminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/staff", func(ctx *gin.Context) {
			var staff []models.Staff
			db := db.GetDb()
			if err := db.
				Order("created_at desc").
				Find(&staff).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": staff, "count": len(staff)})
		}).
		POST("/staff", func(ctx *gin.Context) {
			var body types.CreateStaffRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			staff := models.Staff{
				Name:     body.Name,
				Position: body.Position,
				Shift:    body.Shift,
				Contact:  body.Contact,
			}
			db := db.GetDb()
			if err := db.Create(&staff).Error; err != nil {
				log.Printf("Error creating Staff: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": staff})
		}).
		PUT("/staff/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateStaffRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var staff models.Staff
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Where(&models.Staff{ID: params.ID}).
					First(&staff).
					Error; err != nil {
					return err
				}
				updates := map[string]any{}
				if body.Name != nil {
					updates["name"] = *body.Name
				}
				if body.Position != nil {
					updates["position"] = *body.Position
				}
				if body.Shift != nil {
					updates["shift"] = *body.Shift
				}
				if body.Contact != nil {
					updates["contact"] = *body.Contact
				}
				if len(updates) == 0 {
					return nil
				}
				if err := tx.
					Model(&models.Staff{}).
					Where(&models.Staff{ID: params.ID}).
					Updates(updates).
					Error; err != nil {
					return err
				}
				return tx.Where(&models.Staff{ID: params.ID}).First(&staff).Error
			})
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Staff not found"})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": staff})
		}).
		DELETE("/staff/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var staff models.Staff
			db := db.GetDb()
			db.Model(&models.Staff{}).Where(&models.Staff{ID: params.ID}).Find(&staff)
			if staff.ID < 1 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Staff not found"})
				return
			}
			if err := db.Delete(&staff).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
