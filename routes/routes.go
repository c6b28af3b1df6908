package routes

import (
	"net/http"

	"labstock/auth"
	"labstock/components"
	"labstock/items"
	"labstock/labs"
	"labstock/live"
	"labstock/logsvc"
	"labstock/middleware"
	"labstock/move"
	"labstock/ratelim"
	"labstock/templates"
	"labstock/trash"
	"labstock/users"
	"labstock/utils"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.PUT("/auth/login", rl.Limit(auth.Login))
	router.POST("/auth/register", rl.Limit(auth.Register))
	router.DELETE("/auth/logout", auth.Logout)
	router.PUT("/auth/login_with_cookie", auth.LoginWithCookie)
	router.PUT("/auth/login_with_token", auth.LoginWithToken)
}

func AddCommonRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/common/profile", middleware.RequireUser(users.GetProfile))
	router.PUT("/common/profile", middleware.RequireUser(users.UpdateProfile))
	router.PUT("/common/change-password", middleware.RequireUser(users.ChangePassword))

	router.GET("/common/labs", middleware.RequireUser(labs.GetLabs))
	router.GET("/common/labs/:labId", middleware.RequireUser(labs.GetLab))
	router.GET("/common/singleLab/:labId", middleware.RequireUser(labs.GetSingleLab))
	router.GET("/common/staffLabs", middleware.RequireUser(labs.GetStaffLabs))

	router.GET("/common/searchLab", middleware.RequireUser(labs.SearchLab))
	router.GET("/common/searchLabToInsert", middleware.RequireUser(labs.SearchLabToInsert))
	router.GET("/common/searchUser", users.SearchUser)
	router.GET("/common/searchUserWithFilter", users.SearchUserWithFilter)
	router.GET("/common/searchTemplate", templates.SearchTemplate)

	router.GET("/common/template-by-id/:templateId", middleware.RequireUser(templates.GetTemplateByID))
	router.GET("/common/items/:itemId", middleware.RequireUser(items.GetItemSummary))
	router.GET("/common/items/:itemId/qr", middleware.RequireUser(items.DeviceQR))
	router.GET("/common/components/:componentId", middleware.RequireUser(components.GetComponentSummary))
	router.GET("/common/user/:userId", middleware.RequireUser(users.GetUserSummary))

	router.PUT("/common/move-items", middleware.RequireUser(move.MoveItems))
	router.PUT("/common/updateStateLog", middleware.RequireUser(logsvc.UpdateStateLog))

	router.GET("/common/logs", middleware.RequireUser(logsvc.GetLogs))
	router.GET("/common/logs/:id", middleware.RequireUser(logsvc.GetLog))

	router.GET("/common/countUsers", middleware.RequireUser(users.CountUsers))
	router.GET("/common/countItems", middleware.RequireUser(items.CountItems))
	router.GET("/common/countComponents", middleware.RequireUser(components.CountComponents))
	router.GET("/common/countLabs", middleware.RequireUser(labs.CountLabs))

	router.GET("/common/delay", utils.DelayHandler)
	router.PUT("/common/delay", utils.DelayHandler)
	router.POST("/common/delay", utils.DelayHandler)

	router.GET("/common/live/logs", live.LogStream(hub))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.POST("/admin/create-lab", middleware.RequireAdmin(labs.CreateLab))
	router.PUT("/admin/update-lab", middleware.RequireAdmin(labs.UpdateLab))
	router.GET("/admin/labs", middleware.RequireAdmin(labs.GetLabs))
	router.GET("/admin/labs/:labId", middleware.RequireAdmin(labs.GetLab))
	router.PUT("/admin/labs/:labId", middleware.RequireAdmin(labs.UpdateLabByID))
	router.DELETE("/admin/labs/:labId", middleware.RequireAdmin(labs.DeleteLab))

	router.POST("/admin/devices", middleware.RequireAdmin(items.CreateDevice))
	router.GET("/admin/devices", middleware.RequireAdmin(items.GetDevices))
	router.GET("/admin/devices/:deviceId", middleware.RequireAdmin(items.GetDevice))
	router.PUT("/admin/devices/:deviceId", middleware.RequireAdmin(items.UpdateDevice))
	router.DELETE("/admin/devices/:deviceId", middleware.RequireAdmin(items.DeleteDevice))

	router.POST("/admin/components", middleware.RequireAdmin(components.CreateComponent))
	router.PUT("/admin/components/:componentId", middleware.RequireAdmin(components.UpdateComponent))
	router.DELETE("/admin/components/:componentId", middleware.RequireAdmin(components.DeleteComponent))

	router.POST("/admin/add-template", middleware.RequireAdmin(templates.AddTemplate))
	router.PUT("/admin/update-template", middleware.RequireAdmin(templates.UpdateTemplate))
	router.DELETE("/admin/delete-template", middleware.RequireAdmin(templates.DeleteTemplate))

	router.PUT("/admin/makeStaff", middleware.RequireAdmin(labs.MakeStaff))
	router.PUT("/admin/assignStaff", middleware.RequireAdmin(labs.AssignStaff))
	router.PUT("/admin/removeStaff", middleware.RequireAdmin(labs.RemoveStaff))
	router.DELETE("/admin/labs/:labId/staffs/:staffId", middleware.RequireAdmin(labs.RemoveStaffFromLab))
	router.PUT("/admin/removeStaffRole", middleware.RequireAdmin(labs.DemoteStaff))

	router.GET("/admin/logs", middleware.RequireAdmin(logsvc.GetLogs))
	router.POST("/admin/logs/publish", middleware.RequireAdmin(logsvc.PublishLogs))

	router.GET("/admin/trash", middleware.RequireAdmin(trash.GetTrash))
}

func AddStaffRoutes(router *httprouter.Router) {
	router.GET("/staff/myLabs", middleware.RequireStaff(items.MyLabItems))
	router.PUT("/staff/devices/:deviceId/update-mark-status", middleware.RequireStaff(items.UpdateMarkStatus))
}

// AddRootRoutes wires the welcome, health, and not-found envelopes.
func AddRootRoutes(router *httprouter.Router) {
	router.GET("/", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		utils.SendSuccess(w, http.StatusOK, "Lab inventory API is running.", nil)
	})
	router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "ok"})
	})
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.SendError(w, http.StatusNotFound, "API Path not found")
	})
}
