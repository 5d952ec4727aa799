package handlers

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// HealthHandler reports the gateway's own dependencies: the session
// database, the report email broker, and whether an upstream CRM API is
// configured at all. It never calls the upstream; a slow CRM must not
// make the gateway look down.
type HealthHandler struct {
	DB       *sql.DB
	RabbitMQ *amqp091.Connection
	started  time.Time
}

func NewHealthHandler(db *sql.DB, rabbitMQ *amqp091.Connection) *HealthHandler {
	return &HealthHandler{DB: db, RabbitMQ: rabbitMQ, started: time.Now()}
}

type dependencyStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type healthResponse struct {
	Status       string             `json:"status"`
	Uptime       string             `json:"uptime"`
	Dependencies []dependencyStatus `json:"dependencies"`
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var deps []dependencyStatus
	degraded := false

	db := dependencyStatus{Name: "sessions", Status: "not configured"}
	if h.DB != nil {
		if err := h.DB.PingContext(r.Context()); err != nil {
			db.Status = "unhealthy"
			db.Detail = err.Error()
			degraded = true
		} else {
			db.Status = "healthy"
		}
	}
	deps = append(deps, db)

	mq := dependencyStatus{Name: "rabbitmq", Status: "not configured"}
	if h.RabbitMQ != nil {
		if h.RabbitMQ.IsClosed() {
			mq.Status = "unhealthy"
			mq.Detail = "connection closed"
			degraded = true
		} else {
			mq.Status = "healthy"
		}
	}
	deps = append(deps, mq)

	crmDep := dependencyStatus{Name: "crm", Status: "not configured"}
	if os.Getenv("CRM_API_URL") != "" {
		crmDep.Status = "configured"
	}
	deps = append(deps, crmDep)

	status := "healthy"
	code := http.StatusOK
	if degraded {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, healthResponse{
		Status:       status,
		Uptime:       time.Since(h.started).Round(time.Second).String(),
		Dependencies: deps,
	})
}
