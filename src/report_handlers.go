package main

import (
	"log"
	"net/http"

	"mrt/src/db"
	"mrt/src/models"
	"mrt/src/types"
	"mrt/src/utils"

	"github.com/gin-gonic/gin"
)

func reportHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/reports", func(ctx *gin.Context) {
			var body types.CreateReportRequestBody
			if err := ctx.ShouldBind(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if body.Type == types.REPORT_STATION && body.StationLocation == "" {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "stationLocation is required for station reports"})
				return
			}
			media := models.StringList{}
			form, err := ctx.MultipartForm()
			if err == nil && form != nil {
				for _, file := range form.File["media"] {
					dst := utils.UploadPath(file.Filename)
					if err := ctx.SaveUploadedFile(file, dst); err != nil {
						log.Printf("Error saving upload: %s\n", err.Error())
						ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
						return
					}
					media = append(media, dst)
				}
			}
			report := models.Report{
				ReporterID:      ctx.GetUint("id"),
				Type:            body.Type,
				Subject:         body.Subject,
				Description:     body.Description,
				Rating:          body.Rating,
				StationLocation: body.StationLocation,
				Media:           media,
			}
			db := db.GetDb()
			if err := db.Create(&report).Error; err != nil {
				log.Printf("Error creating Report: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": report})
		})
	return g
}

func reportAdminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/reports", func(ctx *gin.Context) {
			var reports []models.Report
			db := db.GetDb()
			if err := db.
				Preload("Reporter").
				Order("created_at desc").
				Find(&reports).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": reports, "count": len(reports)})
		})
	return g
}
