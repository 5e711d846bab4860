package repositories

import (
	"strings"

	"github.com/learnflow/backend/internal/store"
)

// firstSuccess returns the first successful result of a batch call.
func firstSuccess(results []store.Result) (store.Result, bool) {
	for _, result := range results {
		if result.Success {
			return result, true
		}
	}
	return store.Result{}, false
}

// anySuccess reports whether at least one record of a batch call succeeded.
func anySuccess(results []store.Result) bool {
	_, ok := firstSuccess(results)
	return ok
}

// failureMessages joins the messages of all rejected records for logging.
func failureMessages(results []store.Result) string {
	var messages []string
	for _, result := range results {
		if !result.Success && result.Message != "" {
			messages = append(messages, result.Message)
		}
	}
	return strings.Join(messages, "; ")
}
