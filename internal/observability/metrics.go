package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapty",
		Name:      "workouts_created_total",
		Help:      "Workouts created through the form, by type.",
	}, []string{"type"})
	submissionsRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mapty",
		Name:      "submissions_rejected_total",
		Help:      "Form submissions rejected as invalid input.",
	})
	persistenceErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mapty",
		Name:      "persistence_errors_total",
		Help:      "Failed reads and writes of the workout slot, by operation.",
	}, []string{"op"})
	workoutsLogged = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mapty",
		Name:      "workouts",
		Help:      "Workouts currently in the log.",
	})
)

func init() {
	prometheus.MustRegister(workoutsCreated, submissionsRejected, persistenceErrors, workoutsLogged)
}

func RecordWorkoutCreated(workoutType string) {
	workoutsCreated.WithLabelValues(workoutType).Inc()
}

func RecordSubmissionRejected() {
	submissionsRejected.Inc()
}

// RecordPersistenceError counts a failed slot operation: load, save or clear.
func RecordPersistenceError(op string) {
	persistenceErrors.WithLabelValues(op).Inc()
}

func SetWorkoutCount(n int) {
	workoutsLogged.Set(float64(n))
}
