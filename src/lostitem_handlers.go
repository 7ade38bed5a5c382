package main

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"mrt/src/db"
	"mrt/src/models"
	"mrt/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func lostItemHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/lost-items", func(ctx *gin.Context) {
			var items []models.LostItem
			db := db.GetDb()
			if err := db.
				Order("created_at desc").
				Find(&items).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			// Answers and contact details stay server-side until a claim
			// passes verification.
			for i := range items {
				items[i].ContactPhone = ""
				items[i].ContactEmail = ""
				for q := range items[i].Questions {
					items[i].Questions[q].Answer = ""
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"data": items, "count": len(items)})
		}).
		POST("/lost-items", func(ctx *gin.Context) {
			var body types.CreateLostItemRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			for _, q := range body.Questions {
				if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Answer) == "" {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": "verification questions and answers must not be blank"})
					return
				}
			}
			item := models.LostItem{
				Title:        body.Title,
				Description:  body.Description,
				Photos:       models.StringList(body.Photos),
				ContactName:  body.ContactName,
				ContactPhone: body.ContactPhone,
				ContactEmail: body.ContactEmail,
				Status:       types.LOST_ITEM_LOST,
				Questions:    models.QuestionList(body.Questions),
				PostedBy:     ctx.GetString("email"),
			}
			db := db.GetDb()
			if err := db.Create(&item).Error; err != nil {
				log.Printf("Error creating LostItem: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": item})
		}).
		POST("/lost-items/:id/verify", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.VerifyLostItemClaimRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var item models.LostItem
			db := db.GetDb()
			if err := db.
				Where(&models.LostItem{ID: params.ID}).
				First(&item).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Lost item not found"})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if len(body.Answers) != len(item.Questions) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "all verification questions must be answered"})
				return
			}
			for i, q := range item.Questions {
				expected := strings.ToLower(strings.TrimSpace(q.Answer))
				got := strings.ToLower(strings.TrimSpace(body.Answers[i]))
				if expected != got {
					ctx.JSON(http.StatusForbidden, gin.H{"error": "verification failed"})
					return
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{
				"contactName":  item.ContactName,
				"contactPhone": item.ContactPhone,
				"contactEmail": item.ContactEmail,
			}})
		})
	return g
}

func lostItemAdminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		PUT("/lost-items/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateLostItemStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			res := db.
				Model(&models.LostItem{}).
				Where(&models.LostItem{ID: params.ID}).
				Update("status", body.Status)
			if res.Error != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected < 1 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Lost item not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"status": body.Status})
		}).
		DELETE("/lost-items/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var item models.LostItem
			db := db.GetDb()
			db.Model(&models.LostItem{}).Where(&models.LostItem{ID: params.ID}).Find(&item)
			if item.ID < 1 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Lost item not found"})
				return
			}
			if err := db.Delete(&item).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
