package http

import (
	"net/http"
	"time"

	"github.com/sscarsdale-chl/donutshop/pkg/domain/model"
)

func newHealthHandler(startedAt time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, model.NewHealthStatus(startedAt, time.Now()), http.StatusOK)
	}
}
