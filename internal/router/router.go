package router

import (
	"campushub/internal/handler"
	"campushub/internal/middleware"
	"campushub/internal/service"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	User       *handler.UserHandler
	Room       *handler.RoomHandler
	Vote       *handler.VoteHandler
	DM         *handler.DirectMessageHandler
	Mentorship *handler.MentorshipHandler
	Invite     *handler.InviteHandler
	API        *handler.APIHandler
}

func InitRouter(h Handlers, tokens service.TokenStore) *gin.Engine {
	r := gin.Default()

	// public endpoints
	r.POST("/register", h.User.Register)
	r.POST("/login", h.User.Login)
	r.POST("/token/refresh", h.User.TokenRefresh)

	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(tokens))
	{
		auth.GET("/logout", h.User.Logout)
		auth.GET("/home", h.Room.Home)
		auth.GET("/topics", h.Room.Topics)
		auth.GET("/activity", h.Room.Activity)

		auth.GET("/room/:id", h.Room.GetRoom)
		auth.POST("/room/:id", h.Room.PostComment)
		auth.POST("/room/:id/vote", h.Vote.Vote)
		auth.POST("/create-room", h.Room.CreateRoom)
		auth.POST("/update-room/:id", h.Room.UpdateRoom)
		auth.POST("/delete-room/:id", h.Room.DeleteRoom)
		auth.POST("/delete-message/:id", h.Room.DeleteMessage)

		auth.GET("/profile/:id", h.User.Profile)
		auth.POST("/update-user", h.User.UpdateUser)
		auth.POST("/demo/subscribe", h.User.DemoSubscribe)
		auth.POST("/demo/unsubscribe", h.User.DemoUnsubscribe)

		auth.GET("/messages", h.DM.Inbox)
		auth.GET("/messages/:id", h.DM.Conversation)
		auth.POST("/messages/:id", h.DM.Send)

		auth.GET("/mentorship", h.Mentorship.Directory)
		auth.GET("/mentorship/profile", h.Mentorship.GetProfile)
		auth.POST("/mentorship/profile", h.Mentorship.UpdateProfile)
		auth.POST("/mentorship/profile/delete", h.Mentorship.DeleteProfile)
	}

	// read-only JSON API
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(tokens))
	{
		api.GET("", h.API.Routes)
		api.GET("/rooms", h.API.ListRooms)
		api.GET("/rooms/:id", h.API.GetRoom)
	}

	// invitation code administration
	admin := r.Group("/admin/invites")
	admin.Use(middleware.AuthMiddleware(tokens))
	{
		admin.POST("/generate", h.Invite.Generate)
		admin.GET("/list", h.Invite.List)
		admin.POST("/deactivate", h.Invite.Deactivate)
	}

	return r
}
