package config

const (
	EnvPrefix = "DEISISHOP"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvShopBaseURL        = "DEISISHOP_SHOP_BASE_URL"
	EnvShopRequestTimeout = "DEISISHOP_SHOP_REQUEST_TIMEOUT"
	EnvShopFetchRetries   = "DEISISHOP_SHOP_FETCH_RETRIES"
)
