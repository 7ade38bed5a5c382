package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"slices"
	"time"

	"mrt/src/config"
	"mrt/src/db"
	"mrt/src/models"
	"mrt/src/types"
	"mrt/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func authHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	auth := g.Group("/auth")
	auth.
		POST("/register", func(ctx *gin.Context) {
			var body types.RegisterUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			hashed, err := utils.HashPassword(body.Password)
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			user := models.User{
				Name:        body.Name,
				Email:       body.Email,
				Password:    hashed,
				Phone:       body.Phone,
				DateOfBirth: body.DateOfBirth,
			}
			db := db.GetDb()
			err = db.Transaction(func(tx *gorm.DB) error {
				var count int64
				if err := tx.
					Model(&models.User{}).
					Where(&models.User{Email: body.Email}).
					Count(&count).
					Error; err != nil {
					return err
				}
				if count > 0 {
					return errors.New("an account with this email already exists")
				}
				return tx.Create(&user).Error
			})
			if err != nil {
				log.Printf("Error registering user: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			token, err := utils.GenerateToken(user.Email, "user")
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"token": token, "data": user})
		}).
		POST("/login", func(ctx *gin.Context) {
			var body types.LoginRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var user models.User
			db := db.GetDb()
			if err := db.
				Where(&models.User{Email: body.Email}).
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
				return
			}
			if !utils.CheckPassword(user.Password, body.Password) {
				ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
				return
			}
			token, err := utils.GenerateToken(user.Email, "user")
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"token": token, "data": user})
		}).
		POST("/admin/login", func(ctx *gin.Context) {
			var body types.AdminLoginRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			adminEmail := os.Getenv("ADMIN_EMAIL")
			adminPassword := os.Getenv("ADMIN_PASSWORD")
			if adminEmail == "" || body.Email != adminEmail || body.Password != adminPassword {
				ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			token, err := utils.GenerateToken(adminEmail, "admin")
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"token": token})
		})
	return g
}

func userHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/users/me", func(ctx *gin.Context) {
			email := ctx.GetString("email")
			var user models.User
			db := db.GetDb()
			if err := db.
				Where(&models.User{Email: email}).
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "No user account is associated with this email"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user})
		}).
		PUT("/users/me", func(ctx *gin.Context) {
			var body types.UpdateUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			email := ctx.GetString("email")
			var user models.User
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Where(&models.User{Email: email}).
					First(&user).
					Error; err != nil {
					return err
				}
				updates := map[string]any{}
				if body.Name != nil {
					updates["name"] = *body.Name
				}
				if body.Email != nil {
					updates["email"] = *body.Email
				}
				if body.Phone != nil {
					updates["phone"] = *body.Phone
				}
				if body.Password != nil {
					hashed, err := utils.HashPassword(*body.Password)
					if err != nil {
						return err
					}
					updates["password"] = hashed
				}
				if len(updates) == 0 {
					return nil
				}
				if err := tx.
					Model(&models.User{}).
					Where(&models.User{ID: user.ID}).
					Updates(updates).
					Error; err != nil {
					return err
				}
				return tx.Where(&models.User{ID: user.ID}).First(&user).Error
			})
			if err != nil {
				log.Printf("Error updating user [%s]: %s\n", email, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user})
		})

	favorites := g.Group("/users/me/favorites")
	favorites.
		POST("/stations", func(ctx *gin.Context) {
			var body types.FavoriteStationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			email := ctx.GetString("email")
			var user models.User
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Where(&models.User{Email: email}).First(&user).Error; err != nil {
					return err
				}
				if slices.Contains(user.FavoriteStations, body.Station) {
					return nil
				}
				user.FavoriteStations = append(user.FavoriteStations, body.Station)
				return tx.
					Model(&models.User{}).
					Where(&models.User{ID: user.ID}).
					Update("favorite_stations", user.FavoriteStations).
					Error
			})
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user.FavoriteStations})
		}).
		DELETE("/stations/:station", func(ctx *gin.Context) {
			var params struct {
				Station string `uri:"station" binding:"required"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			email := ctx.GetString("email")
			var user models.User
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Where(&models.User{Email: email}).First(&user).Error; err != nil {
					return err
				}
				kept := user.FavoriteStations[:0]
				for _, s := range user.FavoriteStations {
					if s != params.Station {
						kept = append(kept, s)
					}
				}
				user.FavoriteStations = kept
				return tx.
					Model(&models.User{}).
					Where(&models.User{ID: user.ID}).
					Update("favorite_stations", user.FavoriteStations).
					Error
			})
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user.FavoriteStations})
		}).
		POST("/routes", func(ctx *gin.Context) {
			var body types.FavoriteRouteRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			email := ctx.GetString("email")
			var user models.User
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Where(&models.User{Email: email}).First(&user).Error; err != nil {
					return err
				}
				for _, r := range user.FavoriteRoutes {
					if r.ScheduleID == body.ScheduleID {
						return nil
					}
				}
				user.FavoriteRoutes = append(user.FavoriteRoutes, models.FavoriteRoute{
					ScheduleID:    body.ScheduleID,
					TrainName:     body.TrainName,
					From:          body.From,
					To:            body.To,
					DepartureTime: body.DepartureTime,
					ArrivalTime:   body.ArrivalTime,
					Price:         body.Price,
				})
				return tx.
					Model(&models.User{}).
					Where(&models.User{ID: user.ID}).
					Update("favorite_routes", user.FavoriteRoutes).
					Error
			})
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user.FavoriteRoutes})
		}).
		DELETE("/routes/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			email := ctx.GetString("email")
			var user models.User
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Where(&models.User{Email: email}).First(&user).Error; err != nil {
					return err
				}
				kept := user.FavoriteRoutes[:0]
				for _, r := range user.FavoriteRoutes {
					if r.ScheduleID != params.ID {
						kept = append(kept, r)
					}
				}
				user.FavoriteRoutes = kept
				return tx.
					Model(&models.User{}).
					Where(&models.User{ID: user.ID}).
					Update("favorite_routes", user.FavoriteRoutes).
					Error
			})
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user.FavoriteRoutes})
		})
	return g
}

func studentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/students/verify", func(ctx *gin.Context) {
			email := ctx.GetString("email")
			idCard, err := ctx.FormFile("studentIdCard")
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "studentIdCard file is required"})
				return
			}
			idCardPath := utils.UploadPath(idCard.Filename)
			if err := ctx.SaveUploadedFile(idCard, idCardPath); err != nil {
				log.Printf("Error saving upload: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var secondDocPath string
			if secondDoc, err := ctx.FormFile("secondDocument"); err == nil {
				secondDocPath = utils.UploadPath(secondDoc.Filename)
				if err := ctx.SaveUploadedFile(secondDoc, secondDocPath); err != nil {
					log.Printf("Error saving upload: %s\n", err.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
			}
			db := db.GetDb()
			err = db.Transaction(func(tx *gorm.DB) error {
				return tx.
					Model(&models.User{}).
					Where(&models.User{Email: email}).
					Updates(map[string]any{
						"student_id_card":             idCardPath,
						"student_second_document":     secondDocPath,
						"student_verification_status": types.VERIFICATION_PENDING,
					}).
					Error
			})
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"status": types.VERIFICATION_PENDING})
		})
	return g
}

func studentAdminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/students/pending", func(ctx *gin.Context) {
			var users []models.User
			db := db.GetDb()
			if err := db.
				Where(&models.User{StudentVerificationStatus: types.VERIFICATION_PENDING}).
				Find(&users).
				Error; err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": users, "count": len(users)})
		}).
		PUT("/students/:id/verify", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.StudentVerifyActionRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			updates := map[string]any{}
			switch body.Action {
			case "verify":
				expiry := time.Now().Add(config.STUDENT_VERIFICATION_VALIDITY)
				updates["is_student"] = true
				updates["student_verification_status"] = types.VERIFICATION_VERIFIED
				updates["student_verification_expiry"] = expiry
			case "unverify":
				updates["is_student"] = false
				updates["student_verification_status"] = types.VERIFICATION_NONE
				updates["student_verification_expiry"] = nil
			default:
				updates["is_student"] = false
				updates["student_verification_status"] = types.VERIFICATION_REJECTED
				updates["student_verification_expiry"] = nil
			}
			res := db.
				Model(&models.User{}).
				Where(&models.User{ID: params.ID}).
				Updates(updates)
			if res.Error != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": res.Error.Error()})
				return
			}
			if res.RowsAffected < 1 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"status": updates["student_verification_status"]})
		})
	return g
}

func wifiHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/wifi/status", func(ctx *gin.Context) {
			email := ctx.GetString("email")
			var user models.User
			db := db.GetDb()
			if err := db.
				Where(&models.User{Email: email}).
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "No user account is associated with this email"})
				return
			}
			// Lazy deactivation: the subscription flag is only reconciled
			// with its expiry when someone asks.
			if user.WifiSubscriptionActive && user.WifiSubscriptionExpiry != nil && user.WifiSubscriptionExpiry.Before(time.Now()) {
				if err := db.
					Model(&models.User{}).
					Where(&models.User{ID: user.ID}).
					Update("wifi_subscription_active", false).
					Error; err != nil {
					log.Printf("Error deactivating WiFi for user [%d]: %s\n", user.ID, err.Error())
				}
				user.WifiSubscriptionActive = false
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{
				"active": user.WifiSubscriptionActive,
				"wifiId": user.WifiId,
				"expiry": user.WifiSubscriptionExpiry,
			}})
		}).
		POST("/wifi/activate", func(ctx *gin.Context) {
			var body types.ActivateWifiRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			wifiId, wifiPassword := utils.GenerateWifiCredentials()
			expiry := time.Now().Add(config.WIFI_SUBSCRIPTION_VALIDITY)
			var user models.User
			db := db.GetDb()
			err := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Where(&models.User{ID: body.UserID}).First(&user).Error; err != nil {
					return err
				}
				return tx.
					Model(&models.User{}).
					Where(&models.User{ID: user.ID}).
					Updates(map[string]any{
						"wifi_subscription_active": true,
						"wifi_subscription_expiry": expiry,
						"wifi_id":                  wifiId,
						"wifi_password":            wifiPassword,
					}).
					Error
			})
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
					return
				}
				log.Printf("Error activating WiFi for user [%d]: %s\n", body.UserID, err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{
				"wifiId":       wifiId,
				"wifiPassword": wifiPassword,
				"expiry":       expiry,
			}})
		})
	return g
}
