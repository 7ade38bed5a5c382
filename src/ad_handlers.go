package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"mrt/src/db"
	"mrt/src/lib"
	"mrt/src/models"
	"mrt/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const adsCacheKey = "ads:active"

func invalidateAdsCache() {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	rd.Del(context.Background(), adsCacheKey)
}

func adHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/ads", func(ctx *gin.Context) {
			rd := lib.GetRedisClient()
			if rd != nil {
				cached, err := rd.Get(context.Background(), adsCacheKey).Result()
				if err == nil && cached != "" {
					var ads []models.Ad
					if err := json.Unmarshal([]byte(cached), &ads); err == nil {
						ctx.JSON(http.StatusOK, gin.H{"data": ads, "count": len(ads)})
						return
					}
				}
			}
			var ads []models.Ad
			db := db.GetDb()
			if err := db.
				Where(&models.Ad{IsActive: true}).
				Order("display_order asc").
				Find(&ads).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if rd != nil {
				if b, err := json.Marshal(ads); err == nil {
					rd.SetEx(context.Background(), adsCacheKey, string(b), 5*time.Minute)
				}
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ads, "count": len(ads)})
		})
	return g
}

func adAdminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/ads/all", func(ctx *gin.Context) {
			var ads []models.Ad
			db := db.GetDb()
			if err := db.
				Order("display_order asc").
				Find(&ads).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": ads, "count": len(ads)})
		}).
		POST("/ads", func(ctx *gin.Context) {
			var body types.CreateAdRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ad := models.Ad{
				Title:       body.Title,
				Description: body.Description,
				ImageUrl:    body.ImageUrl,
				Link:        body.Link,
				Order:       body.Order,
				IsActive:    true,
			}
			if body.IsActive != nil {
				ad.IsActive = *body.IsActive
			}
			db := db.GetDb()
			if err := db.Create(&ad).Error; err != nil {
				log.Printf("Error creating Ad: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			invalidateAdsCache()
			ctx.JSON(http.StatusCreated, gin.H{"data": ad})
		}).
		PUT("/ads/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateAdRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var ad models.Ad
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Where(&models.Ad{ID: params.ID}).
					First(&ad).
					Error; err != nil {
					return err
				}
				updates := map[string]any{}
				if body.Title != nil {
					updates["title"] = *body.Title
				}
				if body.Description != nil {
					updates["description"] = *body.Description
				}
				if body.ImageUrl != nil {
					updates["image_url"] = *body.ImageUrl
				}
				if body.Link != nil {
					updates["link"] = *body.Link
				}
				if body.Order != nil {
					updates["display_order"] = *body.Order
				}
				if body.IsActive != nil {
					updates["is_active"] = *body.IsActive
				}
				if len(updates) == 0 {
					return nil
				}
				if err := tx.
					Model(&models.Ad{}).
					Where(&models.Ad{ID: params.ID}).
					Updates(updates).
					Error; err != nil {
					return err
				}
				return tx.Where(&models.Ad{ID: params.ID}).First(&ad).Error
			})
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Ad not found"})
					return
				}
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			invalidateAdsCache()
			ctx.JSON(http.StatusOK, gin.H{"data": ad})
		}).
		DELETE("/ads/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var ad models.Ad
			db := db.GetDb()
			db.Model(&models.Ad{}).Where(&models.Ad{ID: params.ID}).Find(&ad)
			if ad.ID < 1 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Ad not found"})
				return
			}
			if err := db.Delete(&ad).Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			invalidateAdsCache()
			ctx.Status(http.StatusNoContent)
		})
	return g
}
