package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "signupdesk", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "signupdesk", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	SubmissionsStored = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "signupdesk", Name: "submissions_stored_total", Help: "Number of form submissions persisted."},
	)
	RecordsDeleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "signupdesk", Name: "records_deleted_total", Help: "Number of records removed by admin operation."},
		[]string{"op"},
	)
	SMSRecipients = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "signupdesk", Name: "sms_recipients_total", Help: "Number of SMS recipients handed to the notifier by broadcast mode."},
		[]string{"mode"},
	)
	AdminLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "signupdesk", Name: "admin_logins_total", Help: "Admin login attempts by result."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(SubmissionsStored)
	reg.MustRegister(RecordsDeleted)
	reg.MustRegister(SMSRecipients)
	reg.MustRegister(AdminLogins)
}
