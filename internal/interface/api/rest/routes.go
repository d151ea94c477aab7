package rest

const (
	// auth
	RouteRegister = "/register"
	RouteLogin    = "/login"

	// files
	RouteUpload      = "/upload"
	RouteFiles       = "/files"
	RouteFile        = RouteFiles + "/:file_id"
	RouteFileInfo    = RouteFile + "/info"
	RoutePublicFiles = "/public/files"

	// ops
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
