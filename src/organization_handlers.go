package main

import (
	"fmt"
	"log"
	"net/http"

	"ems/src/db"
	awslib "ems/src/lib/aws"
	"ems/src/middlewares"
	"ems/src/services"
	"ems/src/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func organizationHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/organizations",
			middlewares.RequireRoles(types.ROLE_ADMIN),
			func(ctx *gin.Context) {
				var body types.CreateOrganizationRequestBody
				if err := ctx.ShouldBindJSON(&body); err != nil {
					log.Printf("Error in validating request: %s\n", err.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				p := middlewares.GetPrincipal(ctx)
				org, err := services.CreateOrganization(db.GetDb(), p, body)
				if err != nil {
					ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusCreated, gin.H{"data": org})
			}).
		GET("/organizations", func(ctx *gin.Context) {
			var query types.ListQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			orgs, meta, err := services.ListOrganizations(db.GetDb(), p, query)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": orgs, "meta": meta})
		}).
		GET("/organizations/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			org, err := services.GetOrganization(db.GetDb(), p, params.ID)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": org})
		}).
		PATCH("/organizations/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateOrganizationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				log.Printf("Error in validating request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			org, err := services.UpdateOrganization(db.GetDb(), p, params.ID, body)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": org})
		}).
		PUT("/organizations/:id/archive",
			middlewares.RequireRoles(types.ROLE_ADMIN),
			func(ctx *gin.Context) {
				var params types.SimpleRequestParams
				if err := ctx.ShouldBindUri(&params); err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				p := middlewares.GetPrincipal(ctx)
				if err := services.ArchiveOrganization(db.GetDb(), p, params.ID); err != nil {
					ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
					return
				}
				ctx.Status(http.StatusNoContent)
			}).
		POST("/organizations/:id/logo", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			gdb := db.GetDb()
			org, err := services.GetOrganization(gdb, p, params.ID)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			fileHeader, err := ctx.FormFile("logo")
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "logo file is required"})
				return
			}
			file, err := fileHeader.Open()
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			defer file.Close()
			key := fmt.Sprintf("logos/%d-%s", org.ID, uuid.NewString())
			contentType := fileHeader.Header.Get("Content-Type")
			url, err := awslib.S3UploadAsset(ctx, key, file, contentType)
			if err != nil {
				log.Printf("Error uploading asset to S3 bucket: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not upload logo"})
				return
			}
			if err := gdb.Model(org).Update("logo_url", url).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{"logo_url": url}})
		}).
		GET("/dashboard",
			middlewares.RequireRoles(types.ROLE_ADMIN),
			func(ctx *gin.Context) {
				summary, err := services.GetDashboardSummary(ctx, db.GetDb())
				if err != nil {
					ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
					return
				}
				ctx.JSON(http.StatusOK, gin.H{"data": summary})
			})
	return g
}
