package utils

import (
	"log"
	"time"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

var revalidateClient = resty.New().SetTimeout(5 * time.Second)

// Revalidate asks the front end to refresh its cached render of path.
// Fire-and-forget: runs in its own goroutine and only logs failures, callers
// never see an error.
func Revalidate(path string) {
	if config.AppConfig == nil || config.AppConfig.RevalidateURL == "" {
		return
	}

	url := config.AppConfig.RevalidateURL
	secret := config.AppConfig.RevalidateSecret

	go func() {
		resp, err := revalidateClient.R().
			SetHeader("Content-Type", "application/json").
			SetBody(map[string]string{
				"path":   path,
				"secret": secret,
			}).
			Post(url)
		if err != nil {
			log.Printf("[REVALIDATE] request for %s failed: %v", path, err)
			return
		}
		if resp.StatusCode() >= 300 {
			log.Printf("[REVALIDATE] request for %s rejected: %d", path, resp.StatusCode())
		}
	}()
}
