package eventlog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service is the typed logging surface consumed by the rest of the
// application. Each helper fixes the category, derives the level from the
// event semantics and pre-populates details with the domain fields. Every
// helper returns the generated entry ID so callers can correlate later.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Store() *Store {
	return s.store
}

func (s *Service) LogSystem(message string, details map[string]any) uuid.UUID {
	return s.store.AddLog(message, LogLevelInfo, LogCategorySystem, details)
}

func (s *Service) LogProvider(message string, details map[string]any) uuid.UUID {
	return s.store.AddLog(message, LogLevelInfo, LogCategoryProvider, details)
}

func (s *Service) LogUserAction(message string, details map[string]any) uuid.UUID {
	return s.store.AddLog(message, LogLevelInfo, LogCategoryUser, details)
}

func (s *Service) LogWarning(message string, details map[string]any) uuid.UUID {
	return s.store.AddLog(message, LogLevelWarning, LogCategorySystem, details)
}

func (s *Service) LogDebug(message string, details map[string]any) uuid.UUID {
	return s.store.AddLog(message, LogLevelDebug, LogCategorySystem, details)
}

// LogAPIRequest records an API call. Status >= 400 is an error, >= 300 a
// warning, anything else info.
func (s *Service) LogAPIRequest(
	endpoint, method string,
	durationMs int64,
	statusCode int,
	details map[string]any,
) uuid.UUID {
	level := LogLevelInfo
	if statusCode >= 400 {
		level = LogLevelError
	} else if statusCode >= 300 {
		level = LogLevelWarning
	}

	merged := mergeDetails(details, map[string]any{
		"endpoint":   endpoint,
		"method":     method,
		"duration":   durationMs,
		"statusCode": statusCode,
		"timestamp":  s.timestamp(),
	})

	return s.store.Append(AppendEntryRequest{
		Message:    fmt.Sprintf("%s %s - %d (%dms)", method, endpoint, statusCode, durationMs),
		Level:      level,
		Category:   LogCategoryAPI,
		Details:    merged,
		Duration:   &durationMs,
		StatusCode: &statusCode,
	})
}

func (s *Service) LogAuth(action AuthAction, success bool, details map[string]any) uuid.UUID {
	level := LogLevelInfo
	outcome := "Success"
	if !success {
		level = LogLevelError
		outcome = "Failed"
	}

	merged := mergeDetails(details, map[string]any{
		"action":    string(action),
		"success":   success,
		"timestamp": s.timestamp(),
	})

	return s.store.Append(AppendEntryRequest{
		Message:  fmt.Sprintf("Auth %s - %s", action, outcome),
		Level:    level,
		Category: LogCategoryAuth,
		Details:  merged,
	})
}

func (s *Service) LogNetworkStatus(status NetworkState, details map[string]any) uuid.UUID {
	level := LogLevelInfo
	switch status {
	case NetworkStateOffline:
		level = LogLevelError
	case NetworkStateReconnecting:
		level = LogLevelWarning
	}

	merged := mergeDetails(details, map[string]any{
		"status":    string(status),
		"timestamp": s.timestamp(),
	})

	return s.store.Append(AppendEntryRequest{
		Message:  fmt.Sprintf("Network %s", status),
		Level:    level,
		Category: LogCategoryNetwork,
		Details:  merged,
	})
}

func (s *Service) LogDatabase(operation string, success bool, durationMs int64, details map[string]any) uuid.UUID {
	level := LogLevelInfo
	outcome := "Success"
	if !success {
		level = LogLevelError
		outcome = "Failed"
	}

	merged := mergeDetails(details, map[string]any{
		"operation": operation,
		"success":   success,
		"duration":  durationMs,
		"timestamp": s.timestamp(),
	})

	return s.store.Append(AppendEntryRequest{
		Message:  fmt.Sprintf("DB %s - %s (%dms)", operation, outcome, durationMs),
		Level:    level,
		Category: LogCategoryDatabase,
		Details:  merged,
		Duration: &durationMs,
	})
}

// LogError records a failure. When err is non-nil its type name and message
// are merged into details. Go errors carry no stack, so none is recorded.
func (s *Service) LogError(message string, err error, details map[string]any) uuid.UUID {
	var merged map[string]any
	if err != nil {
		merged = mergeDetails(details, map[string]any{
			"name":    fmt.Sprintf("%T", err),
			"message": err.Error(),
		})
	} else {
		merged = mergeDetails(details, nil)
	}

	return s.store.Append(AppendEntryRequest{
		Message:  message,
		Level:    LogLevelError,
		Category: LogCategoryError,
		Details:  merged,
	})
}

func (s *Service) timestamp() string {
	return s.store.now().UTC().Format(time.RFC3339Nano)
}

// mergeDetails copies caller details and overlays the helper's domain
// fields, so a caller-supplied key never shadows a mandated one.
func mergeDetails(details, domain map[string]any) map[string]any {
	if details == nil && domain == nil {
		return nil
	}

	merged := make(map[string]any, len(details)+len(domain))
	for k, v := range details {
		merged[k] = v
	}
	for k, v := range domain {
		merged[k] = v
	}

	return merged
}
