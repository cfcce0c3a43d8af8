package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// AdminPath is the prefix of every admin route.
	AdminPath = RootPath + "admin"

	// LoginPath is the path of the login page.
	LoginPath = AdminPath + "/login"

	// LogoutPath is the path of the logout action.
	LogoutPath = AdminPath + "/logout"

	// LocalsController is the fiber.Locals key of the session's *admin.Controller.
	LocalsController = "Controller"

	// ErrNilACDFatalLogMsg is used if app or cfg or store var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or store is nil"
)
