package cache

import "fmt"

// ForecastKey keys a cached forecast by coordinates and horizon.
func ForecastKey(lat, lon float64, days int) string {
	return fmt.Sprintf("weather:forecast:%.2f:%.2f:%d", lat, lon, days)
}

// RateLimitKey keys the per-client request counter.
func RateLimitKey(clientID string) string {
	return fmt.Sprintf("ratelimit:%s", clientID)
}
