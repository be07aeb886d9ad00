// Command generate triggers the monthly booking materialization over the
// service's internal API. It is meant to be run from cron or a scheduler
// job; the month defaults to next month and can be overridden with the
// first argument as YYYY-MM.
package main

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"sheen/config"
	"sheen/shared/constant"
	"sheen/shared/logger"
	"sheen/shared/timezone"
)

const requestTimeout = 5 * time.Minute

func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	month := timezone.Now().AddDate(0, 1, 0).Format("2006-01")
	if len(os.Args) > 1 {
		month = os.Args[1]
	}

	if _, err := time.Parse("2006-01", month); err != nil {
		log.Fatal().Str("month", month).Msg("month must be formatted as YYYY-MM")
	}

	host := cfg.Server.Host
	if host == "" {
		host = "localhost"
	}

	url := fmt.Sprintf("http://%s/v1/schedules/generate?month=%s", net.JoinHostPort(host, cfg.Server.Port), month)

	request, err := http.NewRequest(http.MethodPost, url, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build generation request")
	}

	request.Header.Set(constant.RequestHeaderAPIKey, cfg.App.APIKey)

	client := &http.Client{Timeout: requestTimeout}

	response, err := client.Do(request)
	if err != nil {
		log.Fatal().Err(err).Str("month", month).Msg("generation request failed")
	}
	defer response.Body.Close()

	body, _ := io.ReadAll(response.Body)

	if response.StatusCode != http.StatusOK {
		log.Fatal().Int("status", response.StatusCode).Str("body", string(body)).Msg("generation rejected")
	}

	log.Info().Str("month", month).RawJSON("result", body).Msg("booking generation completed")
}
