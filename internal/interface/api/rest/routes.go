package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	RouteAccounts = RouteApiV1 + "/accounts"
	RouteAccount  = RouteAccounts + "/:account_id"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
