package main

import (
	"fmt"
	"log"
	"net/http"

	"ems/src/db"
	"ems/src/middlewares"
	"ems/src/services"
	"ems/src/types"

	awslib "ems/src/lib/aws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func eventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/events", func(ctx *gin.Context) {
			var body types.CreateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				log.Printf("Error in validating request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			var orgParam struct {
				OrgID uint `form:"organizationId"`
			}
			_ = ctx.ShouldBindQuery(&orgParam)
			event, err := services.CreateEvent(db.GetDb(), p, orgParam.OrgID, body)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": event})
		}).
		GET("/events", func(ctx *gin.Context) {
			var query types.EventListQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			events, meta, err := services.ListEvents(db.GetDb(), p, query)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events, "meta": meta})
		}).
		GET("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			event, err := services.GetEvent(db.GetDb(), p, params.ID)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event})
		}).
		PATCH("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				log.Printf("Error in validating request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			event, err := services.UpdateEvent(db.GetDb(), p, params.ID, body)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event})
		}).
		PUT("/events/:id/publish", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			event, err := services.SetEventPublished(db.GetDb(), p, params.ID, true)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event})
		}).
		PUT("/events/:id/unpublish", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			event, err := services.SetEventPublished(db.GetDb(), p, params.ID, false)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event})
		}).
		PUT("/events/:id/archive", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			event, err := services.SetEventArchived(db.GetDb(), p, params.ID, true)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event})
		}).
		GET("/events/:id/registrations", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var query types.ListQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			regs, meta, err := services.ListEventRegistrations(db.GetDb(), p, params.ID, query)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": regs, "meta": meta})
		}).
		DELETE("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			if err := services.DeleteEvent(db.GetDb(), p, params.ID); err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		POST("/events/:id/poster", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			gdb := db.GetDb()
			event, err := services.AssertEventOwnedBy(gdb, p, params.ID)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			fileHeader, err := ctx.FormFile("poster")
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "poster file is required"})
				return
			}
			file, err := fileHeader.Open()
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			defer file.Close()
			key := fmt.Sprintf("posters/%d-%s", event.ID, uuid.NewString())
			contentType := fileHeader.Header.Get("Content-Type")
			url, err := awslib.S3UploadAsset(ctx, key, file, contentType)
			if err != nil {
				log.Printf("Error uploading asset to S3 bucket: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not upload poster"})
				return
			}
			if err := gdb.Model(event).Update("poster_url", url).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": gin.H{"poster_url": url}})
		})
	return g
}

func publicEventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/events", func(ctx *gin.Context) {
			var query types.EventListQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			events, meta, err := services.ListPublicEvents(db.GetDb(), query)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": events, "meta": meta})
		}).
		GET("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			event, err := services.GetPublicEvent(db.GetDb(), params.ID)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event})
		}).
		GET("/events/:id/announcements", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var query types.ListQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			announcements, meta, err := services.ListPublicAnnouncements(db.GetDb(), params.ID, query)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": announcements, "meta": meta})
		})
	return g
}
