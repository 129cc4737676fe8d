package routes

import (
	"govconnect/handlers"
	"govconnect/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAppointmentRoutes registers booking, cancellation and record endpoints.
func RegisterAppointmentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	appointments := api.Group("/appointments")
	{
		appointments.Use(middleware.RequireActor())
		appointments.POST("", middleware.RequireCitizen(), hb.Appointments.BookHandler)
		appointments.POST("/cancel", hb.Appointments.CancelHandler)
		appointments.GET("", hb.Appointments.ListHandler)
		appointments.GET("/:id", hb.Appointments.GetHandler)
		appointments.PUT("/:id/comment", middleware.RequireOfficial(), hb.Appointments.CommentHandler)

		appointments.GET("/:id/attendees", hb.Records.ListAttendeesHandler)
		appointments.GET("/:id/attachment", hb.Records.GetAttachmentHandler)

		appointments.GET("/:id/feedback", hb.Records.GetFeedbackHandler)
		appointments.PATCH("/:id/feedback", middleware.RequireCitizen(), hb.Records.UpdateFeedbackHandler)
		appointments.DELETE("/:id/feedback", middleware.RequireCitizen(), hb.Records.DeleteFeedbackHandler)
	}

	attendees := api.Group("/attendees")
	{
		attendees.Use(middleware.RequireActor())
		attendees.POST("", hb.Records.AddAttendeeHandler)
		attendees.DELETE("/:attendeeId", hb.Records.RemoveAttendeeHandler)
	}

	attachments := api.Group("/attachments")
	{
		attachments.Use(middleware.RequireActor())
		attachments.POST("", hb.Records.AddFileHandler)
		attachments.DELETE("", hb.Records.RemoveFileHandler)
	}

	feedback := api.Group("/feedback")
	{
		feedback.GET("", hb.Records.ListFeedbackHandler)
		feedback.POST("", middleware.RequireCitizen(), hb.Records.CreateFeedbackHandler)
	}
}
