package main

import (
	"log"
	"net/http"

	"ems/src/db"
	"ems/src/middlewares"
	"ems/src/services"
	"ems/src/types"

	"github.com/gin-gonic/gin"
)

func announcementHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/announcements", func(ctx *gin.Context) {
			var body types.CreateAnnouncementRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				log.Printf("Error in validating request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			announcement, err := services.CreateAnnouncement(db.GetDb(), p, body)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": announcement})
		}).
		GET("/announcements", func(ctx *gin.Context) {
			var query types.ListQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var eventQuery struct {
				EventID uint `form:"eventId"`
			}
			_ = ctx.ShouldBindQuery(&eventQuery)
			p := middlewares.GetPrincipal(ctx)
			announcements, meta, err := services.ListAnnouncements(db.GetDb(), p, eventQuery.EventID, query)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": announcements, "meta": meta})
		}).
		GET("/announcements/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			announcement, err := services.GetAnnouncement(db.GetDb(), p, params.ID)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": announcement})
		}).
		PATCH("/announcements/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateAnnouncementRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				log.Printf("Error in validating request: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			announcement, err := services.UpdateAnnouncement(db.GetDb(), p, params.ID, body)
			if err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": announcement})
		}).
		DELETE("/announcements/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			p := middlewares.GetPrincipal(ctx)
			if err := services.DeleteAnnouncement(db.GetDb(), p, params.ID); err != nil {
				ctx.JSON(services.HTTPStatus(err), gin.H{"error": err.Error()})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return g
}
